package handler

import (
	"Anatome/internal/pkg/instagram"
	mongopkg "Anatome/internal/pkg/mongo"
	"Anatome/internal/pkg/redis"
	"Anatome/internal/pkg/response"
	"Anatome/internal/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	mongoDB *mongo.Database
	scraper instagram.Scraper
	storage storage.Storage
}

func NewHealthHandler(db *gorm.DB, mongoDB *mongo.Database, scraper instagram.Scraper, storage storage.Storage) *HealthHandler {
	return &HealthHandler{
		db:      db,
		mongoDB: mongoDB,
		scraper: scraper,
		storage: storage,
	}
}

// Health 各依赖的健康状态与抓取器运行快照
func (s *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	mysqlOk := false
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			mysqlOk = sqlDB.PingContext(ctx) == nil
		}
	}

	status := "healthy"
	checks := gin.H{
		"mysql":   mysqlOk,
		"mongo":   mongopkg.Ping(ctx, s.mongoDB),
		"redis":   redis.Ping(ctx) == nil,
		"scraper": s.scraper.IsHealthy(),
		"storage": s.storage.IsHealthy(ctx),
	}
	for _, ok := range checks {
		if ok != true {
			status = "degraded"
			break
		}
	}

	response.Success(c, gin.H{
		"status":  status,
		"checks":  checks,
		"scraper": s.scraper.Stats(),
		"storage": s.storage.Stats(ctx),
	})
}
