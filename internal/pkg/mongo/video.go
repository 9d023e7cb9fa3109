package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video MongoDB 视频入库模型
type Video struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`                     // 发起抓取的用户，月度配额按此字段统计
	SocialProfileID string             `bson:"social_profile_id" json:"social_profile_id"` // 关联的社交账号档案
	BusinessID      string             `bson:"business_id" json:"business_id"`
	VideoURL        string             `bson:"video_url" json:"video_url"` // Instagram 原始帖子链接，同一用户下唯一
	ThumbnailURL    string             `bson:"thumbnail_url" json:"thumbnail_url"`
	S3URL           string             `bson:"s3_url,omitempty" json:"s3_url,omitempty"`                     // 再托管后的视频地址，存储降级时为空
	S3ThumbnailURL  string             `bson:"s3_thumbnail_url,omitempty" json:"s3_thumbnail_url,omitempty"` // 再托管后的封面地址
	Caption         string             `bson:"caption" json:"caption"`
	Likes           int64              `bson:"likes" json:"likes"`
	Comments        int64              `bson:"comments" json:"comments"`
	Shares          int64              `bson:"shares" json:"shares"`
	Views           *int64             `bson:"views,omitempty" json:"views,omitempty"` // 播放量，上游可能不提供
	Duration        float64            `bson:"duration" json:"duration"`               // 视频时长（秒）
	PublishedAt     *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	AnalysisStatus  string             `bson:"analysis_status" json:"analysis_status"` // pending 起始，由下游分析服务流转
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
