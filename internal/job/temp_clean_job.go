package job

import (
	"Anatome/internal/pkg/instagram"
	log "log/slog"
)

// TempCleanJob 定期清扫抓取过程遗留的临时下载文件
type TempCleanJob struct {
	scraper instagram.Scraper
}

func NewTempCleanJob(scraper instagram.Scraper) *TempCleanJob {
	return &TempCleanJob{scraper: scraper}
}

func (s *TempCleanJob) Run() {
	log.Info("start temp cleanup job")
	s.scraper.CleanupTempFiles()
}
