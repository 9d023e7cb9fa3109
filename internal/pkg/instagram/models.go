package instagram

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// maxCaptionLen 入库前对帖子文案的截断上限
const maxCaptionLen = 2000

// VideoInfo 单条视频帖子的元数据，抓取后不可变
type VideoInfo struct {
	Shortcode    string     `json:"id"`
	URL          string     `json:"url"`
	Username     string     `json:"username"`
	Caption      string     `json:"caption"`
	Likes        int64      `json:"likes"`
	Comments     int64      `json:"comments"`
	Shares       int64      `json:"shares"` // 上游接口不提供，恒为 0
	Views        *int64     `json:"views,omitempty"`
	Duration     float64    `json:"duration"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	MediaURL     string     `json:"media_url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
}

// ProfileInfo 账号档案概要
type ProfileInfo struct {
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Biography     string `json:"biography"`
	Followers     int64  `json:"followers"`
	Following     int64  `json:"following"`
	PostsCount    int64  `json:"posts_count"`
	IsVerified    bool   `json:"is_verified"`
	IsPrivate     bool   `json:"is_private"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// 以下为上游接口的线格式

type profileResponse struct {
	Data struct {
		User *profileUser `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

type profileUser struct {
	ID                       string        `json:"id"`
	Username                 string        `json:"username"`
	FullName                 string        `json:"full_name"`
	Biography                string        `json:"biography"`
	IsPrivate                bool          `json:"is_private"`
	IsVerified               bool          `json:"is_verified"`
	ProfilePicURL            string        `json:"profile_pic_url"`
	EdgeFollowedBy           edgeCount     `json:"edge_followed_by"`
	EdgeFollow               edgeCount     `json:"edge_follow"`
	EdgeOwnerToTimelineMedia timelineMedia `json:"edge_owner_to_timeline_media"`
}

type edgeCount struct {
	Count int64 `json:"count"`
}

type timelineMedia struct {
	Count    int64    `json:"count"`
	PageInfo pageInfo `json:"page_info"`
	Edges    []struct {
		Node mediaNode `json:"node"`
	} `json:"edges"`
}

type pageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

type mediaNode struct {
	ID                   string    `json:"id"`
	Shortcode            string    `json:"shortcode"`
	IsVideo              bool      `json:"is_video"`
	DisplayURL           string    `json:"display_url"`
	VideoURL             string    `json:"video_url"`
	VideoDuration        float64   `json:"video_duration"`
	VideoViewCount       *int64    `json:"video_view_count"`
	TakenAtTimestamp     int64     `json:"taken_at_timestamp"`
	EdgeMediaPreviewLike edgeCount `json:"edge_media_preview_like"`
	EdgeMediaToComment   edgeCount `json:"edge_media_to_comment"`
	EdgeMediaToCaption   struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
	Owner struct {
		Username string `json:"username"`
	} `json:"owner"`
}

type mediaPageResponse struct {
	Data struct {
		User struct {
			EdgeOwnerToTimelineMedia timelineMedia `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

type postResponse struct {
	RequiresToLogin bool `json:"requires_to_login"`
	GraphQL         struct {
		ShortcodeMedia *mediaNode `json:"shortcode_media"`
	} `json:"graphql"`
}

// newVideoInfo 将上游媒体节点转换为领域元数据，非视频节点返回 nil
func newVideoInfo(node *mediaNode, username string) *VideoInfo {
	if node == nil || !node.IsVideo {
		return nil
	}

	owner := node.Owner.Username
	if owner == "" {
		owner = username
	}

	caption := ""
	if len(node.EdgeMediaToCaption.Edges) > 0 {
		caption = node.EdgeMediaToCaption.Edges[0].Node.Text
	}
	if len(caption) > maxCaptionLen {
		// 按字节截断会把多字节字符劈开，回退到完整字符的边界
		cut := maxCaptionLen
		for cut > 0 && !utf8.RuneStart(caption[cut]) {
			cut--
		}
		caption = caption[:cut]
	}

	var publishedAt *time.Time
	if node.TakenAtTimestamp > 0 {
		t := time.Unix(node.TakenAtTimestamp, 0).UTC()
		publishedAt = &t
	}

	return &VideoInfo{
		Shortcode:    node.Shortcode,
		URL:          fmt.Sprintf("%s/p/%s/", BaseURL, node.Shortcode),
		Username:     owner,
		Caption:      caption,
		Likes:        node.EdgeMediaPreviewLike.Count,
		Comments:     node.EdgeMediaToComment.Count,
		Views:        node.VideoViewCount,
		Duration:     node.VideoDuration,
		PublishedAt:  publishedAt,
		MediaURL:     node.VideoURL,
		ThumbnailURL: node.DisplayURL,
	}
}
