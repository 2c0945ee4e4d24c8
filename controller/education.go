package controller

import (
	"net/http"
	"strings"

	"github.com/Tougashi/Stunting-sub001/service"
	"github.com/gin-gonic/gin"
)

type EducationController struct {
	Service *service.ArticleService
}

// Import fetches a source page and stores it as a markdown article.
func (ctrl *EducationController) Import(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"required"`
		Url   string `json:"url" binding:"required,url"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	article, err := ctrl.Service.Import(c.Request.Context(), input.Title, input.Url)
	if err != nil {
		logger.Warnf("[%s] Failed to import article from %s: %s", c.GetString("requestId"), input.Url, err)
		fail(c, http.StatusBadGateway, "Failed to import article")
		return
	}

	ok(c, http.StatusOK, article)
}

func (ctrl *EducationController) List(c *gin.Context) {
	articles, err := ctrl.Service.List(c.Request.Context())
	if err != nil {
		logger.Warnf("[%s] Failed to list articles: %s", c.GetString("requestId"), err)
		fail(c, http.StatusInternalServerError, "Failed to load articles")
		return
	}

	ok(c, http.StatusOK, articles)
}

func (ctrl *EducationController) Get(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		fail(c, http.StatusBadRequest, "Missing slug")
		return
	}

	article, html, err := ctrl.Service.Get(c.Request.Context(), slug)
	if err != nil {
		fail(c, http.StatusNotFound, "Article not found")
		return
	}

	ok(c, http.StatusOK, gin.H{"article": article, "html": html})
}
