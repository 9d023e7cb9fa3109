package service

import (
	"Anatome/internal/api/config"
	"Anatome/internal/api/dto"
	"Anatome/internal/pkg/consts"
	"Anatome/internal/pkg/mongo"
	"Anatome/internal/repository"
	"context"
	log "log/slog"
	"math"
	"time"
)

// LimitsService 按订阅档位管控每用户每月视频下载配额
type LimitsService interface {
	// CheckLimit 判定用户是否还能再下载 requested 条视频。
	// 依赖查询失败时按免费档 / 零用量之外最保守的结果兜底：直接判不允许。
	CheckLimit(ctx context.Context, userID string, requested int) *dto.QuotaCheckDTO
	// UsageStats 返回用户当月用量统计
	UsageStats(ctx context.Context, userID string) *dto.UsageStatsDTO
	// SubscriptionLimits 返回各订阅档位的月度上限
	SubscriptionLimits() *dto.LimitsDTO
}

type limitsServiceImpl struct {
	userRepo  repository.UserRepo
	videoRepo mongo.VideoRepo
	quota     config.QuotaConfig
}

func NewLimitsService(userRepo repository.UserRepo, videoRepo mongo.VideoRepo) LimitsService {
	return &limitsServiceImpl{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		quota:     config.Cfg.Quota,
	}
}

func (s *limitsServiceImpl) CheckLimit(ctx context.Context, userID string, requested int) *dto.QuotaCheckDTO {
	plan := s.planFor(ctx, userID)
	limit := s.limitFor(plan)

	current, err := s.videoRepo.CountCreatedSince(ctx, userID, monthStart(time.Now().UTC()))
	if err != nil {
		log.Error("failed to count monthly usage, denying request", "user_id", userID, "err", err)
		return &dto.QuotaCheckDTO{
			Allowed:      false,
			CurrentCount: 0,
			Limit:        limit,
			Remaining:    0,
			Requested:    requested,
			Subscription: plan,
		}
	}

	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}

	return &dto.QuotaCheckDTO{
		Allowed:      current+int64(requested) <= limit,
		CurrentCount: current,
		Limit:        limit,
		Remaining:    remaining,
		Requested:    requested,
		Subscription: plan,
	}
}

func (s *limitsServiceImpl) UsageStats(ctx context.Context, userID string) *dto.UsageStatsDTO {
	plan := s.planFor(ctx, userID)
	limit := s.limitFor(plan)
	periodStart := monthStart(time.Now().UTC())

	current, err := s.videoRepo.CountCreatedSince(ctx, userID, periodStart)
	if err != nil {
		log.Error("failed to count monthly usage", "user_id", userID, "err", err)
		current = 0
	}

	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}

	percentage := 0.0
	if limit > 0 {
		percentage = math.Round(float64(current)/float64(limit)*100*100) / 100
	}

	return &dto.UsageStatsDTO{
		UserID:          userID,
		Subscription:    plan,
		VideosThisMonth: current,
		MonthlyLimit:    limit,
		Remaining:       remaining,
		UsagePercentage: percentage,
		PeriodStart:     periodStart.Format(time.RFC3339),
	}
}

func (s *limitsServiceImpl) SubscriptionLimits() *dto.LimitsDTO {
	return &dto.LimitsDTO{
		Limits: map[string]int{
			consts.PlanFree:       s.quota.Free,
			consts.PlanPro:        s.quota.Pro,
			consts.PlanEnterprise: s.quota.Enterprise,
		},
	}
}

// planFor 查询用户订阅档位，用户不存在或查询失败时按免费档处理
func (s *limitsServiceImpl) planFor(ctx context.Context, userID string) string {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		log.Error("failed to load user, falling back to free plan", "user_id", userID, "err", err)
		return consts.PlanFree
	}
	if user == nil || user.SubscriptionPlan == "" {
		return consts.PlanFree
	}
	return user.SubscriptionPlan
}

func (s *limitsServiceImpl) limitFor(plan string) int64 {
	switch plan {
	case consts.PlanPro:
		return int64(s.quota.Pro)
	case consts.PlanEnterprise:
		return int64(s.quota.Enterprise)
	default:
		return int64(s.quota.Free)
	}
}

// monthStart 返回所在自然月的起点（UTC）
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
