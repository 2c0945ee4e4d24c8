package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Tougashi/Stunting-sub001/config"
	"github.com/Tougashi/Stunting-sub001/controller"
	"github.com/Tougashi/Stunting-sub001/model"
	"github.com/Tougashi/Stunting-sub001/platform"
	"github.com/Tougashi/Stunting-sub001/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

// TokenAuthMiddleware ...
// JWT Authentication middleware attached to each request that needs to be authenticated to
// validate the access_token in the header
func TokenAuthMiddleware(auth *controller.AuthController) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("failed to load the env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	platform.InitFile("./log", "gin")

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	if err := platform.InitDB(cfg.SQL); err != nil {
		platform.Logger.Errorf("init database failed: %s", err)
		os.Exit(1)
	}
	if err := model.InstallDB(platform.DB); err != nil {
		platform.Logger.Errorf("migrate database failed: %s", err)
		os.Exit(1)
	}

	platform.InitLLMClient(cfg.LLM)

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		platform.Logger.Errorf("create upload dir failed: %s", err)
		os.Exit(1)
	}

	consultationRepo := model.NewConsultationRepo(platform.DB)
	userRepo := model.NewUserRepo(platform.DB)
	scanRepo := model.NewScanRepo(platform.DB)
	articleRepo := model.NewArticleRepo(platform.DB)

	tokenService := &service.TokenService{Secret: cfg.AccessSecret}
	generator := service.NewOpenAIGenerator(platform.LLMClient, cfg.LLM.Model, cfg.LLM.Timeout)
	consultationService := service.NewConsultationService(consultationRepo, generator)
	userService := &service.UserService{Repo: userRepo, Tokens: tokenService}
	articleService := &service.ArticleService{Repo: articleRepo}
	reportService := &service.ReportService{
		Consultations: consultationRepo,
		Scans:         scanRepo,
		SMTP:          cfg.SMTP,
	}

	auth := &controller.AuthController{Tokens: tokenService}
	user := &controller.UserController{Service: userService}
	chatbot := &controller.ChatbotController{Service: consultationService}
	scan := &controller.ScanController{Repo: scanRepo, UploadDir: cfg.UploadDir}
	education := &controller.EducationController{Service: articleService}

	r.POST("/user/register", user.Register)
	r.POST("/user/login", user.Login)

	//Refresh the token
	r.POST("/token/refresh", auth.Refresh)

	// Consultation chatbot
	r.POST("/chatbot", chatbot.Consult)
	r.GET("/chatbot", func(c *gin.Context) {
		c.JSON(400, gin.H{"success": false, "error": "Missing userId"})
	})
	r.GET("/chatbot/:userId", chatbot.History)

	// Scan intake (analysis not implemented yet)
	r.POST("/scan", TokenAuthMiddleware(auth), scan.Upload)
	r.GET("/scan/:userId", TokenAuthMiddleware(auth), scan.History)

	// Education articles
	r.POST("/education/import", TokenAuthMiddleware(auth), education.Import)
	r.GET("/education", education.List)
	r.GET("/education/:slug", education.Get)

	c := cron.New()
	c.AddFunc("0 6 * * *", func() {
		if err := reportService.SendDailyReport(context.Background()); err != nil {
			platform.Logger.Warnf("daily report failed: %s", err)
		}
	})
	c.Start()

	r.Run(":" + cfg.Port)
}
