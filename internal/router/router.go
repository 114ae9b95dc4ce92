package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/nexuspath/backend/config"
	"github.com/nexuspath/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	templateHandler *handler.TemplateHandler,
	sectionHandler *handler.SectionHandler,
	entryHandler *handler.EntryHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the NexusPath API"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	templates := r.Group("/templates")
	{
		templates.POST("/", templateHandler.Create)
		templates.GET("/", templateHandler.List)
		templates.GET("/:id", templateHandler.Get)
		templates.PATCH("/:id", templateHandler.Update)
		templates.DELETE("/:id", templateHandler.Delete)
		templates.POST("/:id/sections/", templateHandler.CreateSection)
		templates.GET("/:id/sections/", templateHandler.ListSections)
	}

	sections := r.Group("/sections")
	{
		sections.PUT("/:id/entry", entryHandler.Upsert)
		sections.GET("/:id/entry", entryHandler.GetForSection)
		sections.GET("/:id", sectionHandler.Get)
		sections.PATCH("/:id", sectionHandler.Update)
		sections.DELETE("/:id", sectionHandler.Delete)
	}

	entries := r.Group("/entries")
	{
		entries.GET("/favorites/", entryHandler.ListFavorites)
		entries.PATCH("/:id/favorite", entryHandler.UpdateFavorite)
	}

	return r
}
