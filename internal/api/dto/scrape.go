package dto

// ScrapeProfileDTO 抓取账号时间线 - 请求
type ScrapeProfileDTO struct {
	Username        string `json:"username" binding:"required" validate:"min=1,max=30"`
	SocialProfileID string `json:"social_profile_id" binding:"required"`
	BusinessID      string `json:"business_id" binding:"required"`
	MaxVideos       int    `json:"max_videos" validate:"min=0,max=50"`
}

// ScrapeVideoDTO 抓取单条视频 - 请求
type ScrapeVideoDTO struct {
	VideoURL        string `json:"video_url" binding:"required" validate:"min=1,max=512"`
	SocialProfileID string `json:"social_profile_id" binding:"required"`
	BusinessID      string `json:"business_id" binding:"required"`
}

// ScrapeAcceptedDTO 抓取任务已受理 - 响应
type ScrapeAcceptedDTO struct {
	Username  string `json:"username"`
	MaxVideos int    `json:"max_videos"`
	Status    string `json:"status"`
}

// ScrapeStatusDTO 抓取任务进度
type ScrapeStatusDTO struct {
	UserID            string       `json:"user_id"`
	Username          string       `json:"username"`
	Status            string       `json:"status"`
	Requested         int          `json:"requested"`
	Created           int          `json:"created"`
	SkippedDuplicates int          `json:"skipped_duplicates"`
	Failed            []ItemFailed `json:"failed"`
	StartedAt         string       `json:"started_at"`
	FinishedAt        string       `json:"finished_at,omitempty"`
	Error             string       `json:"error,omitempty"`
}

// ItemFailed 单条视频处理失败明细
type ItemFailed struct {
	VideoURL string `json:"video_url"`
	Reason   string `json:"reason"`
}
