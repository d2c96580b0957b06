package handler

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitRoutes собирает gin-роутер со всеми маршрутами сервиса.
// uploadsDir — каталог для раздачи статики /uploads (пустая строка, если
// файлы хранятся не на диске).
func (h *Handler) InitRoutes(uploadsDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем в консоль
		if err, ok := recovered.(string); ok {
			log.Printf("panic recovered: %s\n", err)
		} else if err, ok := recovered.(error); ok {
			log.Printf("panic recovered: %v\n", err)
		} else {
			log.Printf("panic recovered: unknown error: %v\n", recovered)
		}
		// Отправляем 500 клиенту
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3001", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Авторизация
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		if h.OAuth != nil {
			auth.GET("/google/login", h.GoogleLogin)
			auth.GET("/google/callback", h.GoogleCallback)
		}
	}

	// Профиль
	profile := r.Group("/profile")
	{
		profile.Use(h.AuthMiddleware())
		profile.GET("/", h.GetProfile)
	}

	// Метки
	markers := r.Group("/api/markers")
	{
		markers.Use(h.AuthMiddleware())
		markers.GET("", h.ListMarkers)
		markers.POST("", h.CreateMarker)
		markers.PUT("/:id", h.UpdateMarker)
		markers.DELETE("/:id", h.DeleteMarker)
	}

	// Загруженные картинки раздаем как есть
	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
