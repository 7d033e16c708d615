// Package router assembles the gin engine: middleware, services, handlers
// and routes.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/config"
	"github.com/Nofexxx/pet-f/internal/handler"
	"github.com/Nofexxx/pet-f/internal/middleware"
	fileservice "github.com/Nofexxx/pet-f/internal/service/file"
	tagservice "github.com/Nofexxx/pet-f/internal/service/tag"
)

// Router wires the HTTP engine to the database.
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter creates the configured engine with all routes registered.
func NewRouter(loggerMiddleware *middleware.LoggerMiddleware, db *gorm.DB, cfg *config.Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	if cfg.Ingest.MaxFileSize > 0 {
		engine.MaxMultipartMemory = cfg.Ingest.MaxFileSize
	}

	fileService := fileservice.NewFileService(db)
	tagService := tagservice.NewTagService(db)

	fileHandler := handler.NewFileHandler(fileService)
	tagHandler := handler.NewTagHandler(tagService)

	engine.Use(gin.Recovery())
	engine.Use(loggerMiddleware.RequestLogger())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        86400,
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	api := engine.Group("/api")
	{
		api.GET("/db/status", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err != nil {
				c.JSON(500, gin.H{"error": "Database connection error"})
				return
			}
			if err := sqlDB.Ping(); err != nil {
				c.JSON(500, gin.H{"error": "Database ping failed"})
				return
			}
			c.JSON(200, gin.H{"status": "Database connection OK"})
		})

		files := api.Group("/file")
		{
			files.POST("/read", fileHandler.ReadFile)
			files.GET("/list", fileHandler.ListFiles)
		}

		tags := api.Group("/tags")
		{
			tags.GET("/get-count", tagHandler.GetTagCount)
			tags.GET("/attributes/get", tagHandler.GetTagAttributes)
		}
	}

	return &Router{
		engine: engine,
		db:     db,
	}
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB returns the database handle.
func (r *Router) GetDB() *gorm.DB {
	return r.db
}
