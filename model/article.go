package model

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Article is an education page for the marketing site, stored as markdown.
type Article struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	SourceURL string    `gorm:"type:text" json:"source_url"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Article) TableName() string { return "articles" }

type ArticleRepo struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func (r *ArticleRepo) Create(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepo) List(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}
