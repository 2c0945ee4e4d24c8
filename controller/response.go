package controller

import (
	"github.com/Tougashi/Stunting-sub001/platform"
	"github.com/gin-gonic/gin"
)

var logger = platform.Logger

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
