package server

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"categories-api/internal/config"
	"categories-api/internal/middleware"
	categoryHttp "categories-api/internal/modules/category/delivery/http"
	categoryRepo "categories-api/internal/modules/category/repository"
	categoryService "categories-api/internal/modules/category/service"
	pkgvalidator "categories-api/pkg/validator"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	if err := pkgvalidator.RegisterSlugValidation(); err != nil {
		log.Fatalf("failed to register slug validation: %v", err)
	}

	repo := categoryRepo.NewCategoryRepository(db)
	svc := categoryService.NewCategoryService(repo)
	handler := categoryHttp.NewCategoryHandler(svc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimitWrite)

	api := router.Group("/api")

	categories := api.Group("/categories")
	{
		categories.GET("/", handler.ListCategories)
		categories.GET("/category", handler.GetCategory)

		writes := categories.Group("")
		writes.Use(limiter.LimitWrites())
		{
			writes.POST("/", handler.CreateCategory)
			writes.PATCH("/:id", handler.UpdateCategory)
			writes.DELETE("/:id", handler.DeleteCategory)
		}
	}

	return &Server{engine: router, cfg: cfg}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
}
