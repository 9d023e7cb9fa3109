package api

import "Anatome/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ScrapeHandler *handler.ScrapeHandler
	VideoHandler  *handler.VideoHandler
	UsageHandler  *handler.UsageHandler
	MediaHandler  *handler.MediaHandler
	HealthHandler *handler.HealthHandler
}
