package consts

const (
	MimeVideoMp4  = "video/mp4"
	MimeImageJpeg = "image/jpeg"
	MimeImagePng  = "image/png"
	MimeImageWebp = "image/webp"
)

const (
	// AnalysisStatusPending 新入库视频的初始分析状态，由下游分析服务流转
	AnalysisStatusPending = "pending"
)

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

const (
	ScrapeStatusRunning   = "running"
	ScrapeStatusCompleted = "completed"
	ScrapeStatusFailed    = "failed"
)

// CacheControlLongLived 再托管媒体统一的长效缓存策略
const CacheControlLongLived = "max-age=31536000"
