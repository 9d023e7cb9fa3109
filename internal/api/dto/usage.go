package dto

// QuotaCheckDTO 单次配额判定结果
type QuotaCheckDTO struct {
	Allowed      bool   `json:"allowed"`
	CurrentCount int64  `json:"current_count"`
	Limit        int64  `json:"limit"`
	Remaining    int64  `json:"remaining"`
	Requested    int    `json:"requested"`
	Subscription string `json:"subscription"`
}

// UsageStatsDTO 当月用量统计
type UsageStatsDTO struct {
	UserID          string  `json:"user_id"`
	Subscription    string  `json:"subscription"`
	VideosThisMonth int64   `json:"videos_this_month"`
	MonthlyLimit    int64   `json:"monthly_limit"`
	Remaining       int64   `json:"remaining"`
	UsagePercentage float64 `json:"usage_percentage"`
	PeriodStart     string  `json:"period_start"`
}

// LimitsDTO 各订阅档位的月度上限
type LimitsDTO struct {
	Limits map[string]int `json:"limits"`
}
