package dto

// VideoDTO 视频记录
type VideoDTO struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	SocialProfileID string  `json:"social_profile_id"`
	BusinessID      string  `json:"business_id"`
	VideoURL        string  `json:"video_url"`
	ThumbnailURL    string  `json:"thumbnail_url,omitempty"`
	S3URL           string  `json:"s3_url,omitempty"`
	S3ThumbnailURL  string  `json:"s3_thumbnail_url,omitempty"`
	Caption         string  `json:"caption"`
	Likes           int64   `json:"likes"`
	Comments        int64   `json:"comments"`
	Shares          int64   `json:"shares"`
	Views           *int64  `json:"views,omitempty"`
	Duration        float64 `json:"duration"`
	PublishedAt     string  `json:"published_at,omitempty"`
	AnalysisStatus  string  `json:"analysis_status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// VideoListDTO 视频列表 - 响应
type VideoListDTO struct {
	Videos []*VideoDTO `json:"videos"`
	Total  int64       `json:"total"`
	Skip   int         `json:"skip"`
	Limit  int         `json:"limit"`
}
