package controller

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Tougashi/Stunting-sub001/model"
	"github.com/gin-gonic/gin"
	uuid "github.com/google/uuid"
)

// ScanController stores scan uploads and their metadata. Image analysis is not
// implemented yet; records stay in the pending status.
type ScanController struct {
	Repo      *model.ScanRepo
	UploadDir string
}

func (ctrl *ScanController) Upload(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("userId"))
	if userID == "" {
		fail(c, http.StatusBadRequest, "Missing userId")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "Missing image")
		return
	}

	stored := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	dst := filepath.Join(ctrl.UploadDir, stored)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Warnf("[%s] Failed to save upload: %s", c.GetString("requestId"), err)
		fail(c, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	rec := &model.ScanRecord{
		UserID:    userID,
		FileName:  file.Filename,
		ImagePath: dst,
		Status:    model.ScanStatusPending,
	}
	if err := ctrl.Repo.Create(c.Request.Context(), rec); err != nil {
		logger.Warnf("[%s] Failed to store scan record: %s", c.GetString("requestId"), err)
		fail(c, http.StatusInternalServerError, "Failed to store scan record")
		return
	}

	ok(c, http.StatusOK, rec)
}

func (ctrl *ScanController) History(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		fail(c, http.StatusBadRequest, "Missing userId")
		return
	}

	recs, err := ctrl.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Warnf("[%s] Failed to list scans for %s: %s", c.GetString("requestId"), userID, err)
		fail(c, http.StatusInternalServerError, "Failed to load scan history")
		return
	}
	if recs == nil {
		recs = []model.ScanRecord{}
	}

	ok(c, http.StatusOK, recs)
}
