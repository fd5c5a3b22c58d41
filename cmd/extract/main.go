// cmd/extract/main.go
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purchasestore/shein-finance-extract/internal/api/handlers"
	"github.com/purchasestore/shein-finance-extract/internal/api/responses"
	"github.com/purchasestore/shein-finance-extract/internal/config"
	"github.com/purchasestore/shein-finance-extract/internal/core/extract"
	"github.com/purchasestore/shein-finance-extract/internal/jobs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Falha ao carregar configuração: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Falha ao iniciar logger: ", err)
	}
	defer logger.Sync()
	responses.InitLogger(logger)

	gin.SetMode(cfg.GinMode)

	extractService := extract.NewService(cfg.DateColumn, cfg.AmountColumn)
	jobsManager := jobs.NewManager()
	extractHandler := handlers.NewExtractHandler(extractService, jobsManager, logger)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := jobsManager.Expire(cfg.JobRetention); removed > 0 {
				logger.Info("Jobs terminados expirados", zap.Int("removidos", removed))
			}
		}
	}()

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	apiV1 := router.Group("/api/v1")
	{
		// Sem Middleware -- Gateway lida com isso
		apiV1.POST("/extract/process", extractHandler.HandleProcess)
		apiV1.POST("/extract/export/xlsx", extractHandler.HandleExportXLSX)
		apiV1.POST("/extract/export/pdf", extractHandler.HandleExportPDF)
		apiV1.POST("/extract/jobs", extractHandler.HandleCreateJob)
		apiV1.GET("/extract/jobs/:id/events", extractHandler.HandleJobEvents)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "extract-service"})
	})

	logger.Info("🚀 Extract Service (Go) iniciado", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de extração: ", err)
	}
}
