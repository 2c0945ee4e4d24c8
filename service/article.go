package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/Tougashi/Stunting-sub001/model"
	"github.com/yuin/goldmark"
)

// ArticleService imports education pages from a source URL, keeps them as
// markdown, and renders HTML for the site.
type ArticleService struct {
	Repo *model.ArticleRepo
}

func (s *ArticleService) Import(ctx context.Context, title, sourceURL string) (*model.Article, error) {
	res, err := http.Get(sourceURL)
	if err != nil {
		logger.Warnf("request %s error, %s", sourceURL, err)
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read source body: %w", err)
	}

	content, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to convert source to markdown: %w", err)
	}

	article := &model.Article{
		Slug:      Slugify(title),
		Title:     title,
		SourceURL: sourceURL,
		Content:   content,
	}
	if err := s.Repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to store article: %w", err)
	}
	return article, nil
}

func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	return s.Repo.List(ctx)
}

// Get returns the article plus its markdown rendered to HTML.
func (s *ArticleService) Get(ctx context.Context, slug string) (*model.Article, string, error) {
	article, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(article.Content), &buf); err != nil {
		return nil, "", fmt.Errorf("failed to render article: %w", err)
	}
	return article, buf.String(), nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(title string) string {
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
