package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/nexuspath/backend/config"
	"github.com/nexuspath/backend/internal/handler"
	"github.com/nexuspath/backend/internal/pkg/database"
	"github.com/nexuspath/backend/internal/repository"
	"github.com/nexuspath/backend/internal/router"
	"github.com/nexuspath/backend/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	templateRepo := repository.NewTemplateRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	// 初始化 Service
	templateService := service.NewTemplateService(templateRepo, sectionRepo)
	sectionService := service.NewSectionService(sectionRepo, templateRepo)
	entryService := service.NewEntryService(entryRepo, sectionRepo)

	// 初始化 Handler
	templateHandler := handler.NewTemplateHandler(templateService, sectionService)
	sectionHandler := handler.NewSectionHandler(sectionService)
	entryHandler := handler.NewEntryHandler(entryService)

	// 设置路由
	r := router.Setup(cfg, templateHandler, sectionHandler, entryHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
