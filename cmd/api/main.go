// @title           Document Scanner API
// @version         1.0
// @description     Accepts identity-document uploads, classifies and extracts fields with a vision model, and stores the results.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/data/blob"
	"github.com/akolanti/DocScanAPI/internal/data/cache"
	"github.com/akolanti/DocScanAPI/internal/data/store"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/handlers"
	"github.com/akolanti/DocScanAPI/internal/pipeline"
	"github.com/akolanti/DocScanAPI/internal/preprocess"
	"github.com/akolanti/DocScanAPI/internal/server"
	"github.com/akolanti/DocScanAPI/internal/vision"
	"github.com/akolanti/DocScanAPI/internal/vision/geminiVision"
	"github.com/akolanti/DocScanAPI/internal/vision/openaiVision"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//blob storage for the uploaded files
	blobs, err := blob.GetFileStore(config.UploadsDirName)
	if err != nil {
		logger.Error("Couldn't prepare the uploads directory. Shutting down.", "error", err)
		return
	}

	//record store: sqlite, with an in-memory fallback
	var documents docModel.DocumentStore
	if sqliteStore := store.GetSQLiteDocumentStore(serviceContext, config.SQLiteDBPath); sqliteStore != nil {
		documents = sqliteStore
	} else {
		logger.Error("SQLite store is offline, records will not survive a restart")
		documents = store.InitInMemoryDocumentStore()
	}

	//result cache is optional; nil just disables it
	var resultCache pipeline.ResultCache
	if redisCache := cache.GetRedisResultCache(serviceContext); redisCache != nil {
		resultCache = redisCache
	} else {
		logger.Warn("Result cache is offline, every upload will hit the model")
	}

	//vision backend
	var provider vision.Provider
	switch config.VisionProviderName() {
	case "gemini":
		provider = geminiVision.GetGeminiVision(serviceContext, config.GeminiVisionModel, config.GeminiAPIKey())
	default:
		provider = openaiVision.GetOpenAIVision(config.OpenAIVisionModel, config.OpenAIAPIKey())
	}
	if provider == nil {
		logger.Error("Vision provider failed to initialize. Shutting down.", "provider", config.VisionProviderName())
		return
	}

	pipelineService := pipeline.NewService(preprocess.NewConverter(), provider, resultCache)

	handlers.InitDocumentHandler(handlers.Dependencies{
		Processor: pipelineService,
		Documents: documents,
		Blobs:     blobs,
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
