package wire

import (
	"Anatome/internal/api"
	"Anatome/internal/api/config"
	"Anatome/internal/api/handler"
	"Anatome/internal/job"
	"Anatome/internal/pkg/cron"
	"Anatome/internal/pkg/instagram"
	mongopkg "Anatome/internal/pkg/mongo"
	"Anatome/internal/pkg/storage"
	"Anatome/internal/repository"
	"Anatome/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	videoRepo := mongopkg.NewVideoRepo(mongoDB)

	store := storage.NewStorage(cfg.MinIO)
	scraper := instagram.NewScraper(cfg.Instagram)

	limitsService := service.NewLimitsService(userRepo, videoRepo)
	videoService := service.NewVideoService(videoRepo, store)
	scrapeService := service.NewScrapeService(scraper, videoRepo, store)

	handlers := &api.HandlersGroup{
		ScrapeHandler: handler.NewScrapeHandler(scrapeService, limitsService),
		VideoHandler:  handler.NewVideoHandler(videoService),
		UsageHandler:  handler.NewUsageHandler(limitsService),
		MediaHandler:  handler.NewMediaHandler(store),
		HealthHandler: handler.NewHealthHandler(db, mongoDB, scraper, store),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewTempCleanJob(scraper))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
