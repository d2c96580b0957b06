package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "mapa-markers-back/docs"
	"mapa-markers-back/internal/handler"
	"mapa-markers-back/internal/service"
	"mapa-markers-back/internal/storage"
	"mapa-markers-back/internal/storage/disk"
	"mapa-markers-back/internal/storage/postgres"
)

// @title Mapa Markers API
// @version 1.0
// @description API для сервиса меток на карте
// @host localhost:3000
// @BasePath /
// @schemes http https
func main() {

	// Загрузка переменных окружения (local)
	if err := godotenv.Load(".env.local"); err != nil {
		log.Println("Error loading .env.local file")
	}

	// БД
	db := postgres.InitDB()

	// Хранилище файлов
	content, err := storage.NewContentStore()
	if err != nil {
		log.Fatalf("failed to init content store: %v", err)
	}

	// Сервисы
	userService := service.NewUserService(db)
	markerService := service.NewMarkerService(db, content)
	oauthService := service.NewGoogleOAuthService(service.NewGoogleOAuthConfig(), db)

	// Обработчик
	h := handler.NewHandler(userService, markerService, oauthService)

	// Статику /uploads раздаем только при дисковом хранилище
	uploadsDir := ""
	if d, ok := content.(*disk.DiskStorage); ok {
		uploadsDir = d.Dir()
	}

	r := h.InitRoutes(uploadsDir)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(r.Run(":" + port))
}
