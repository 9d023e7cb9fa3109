package service

import (
	"Anatome/internal/api/config"
	"Anatome/internal/model"
	"Anatome/internal/pkg/consts"
	"Anatome/internal/pkg/mongo"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	user *model.User
	err  error
}

func (f *fakeUserRepo) GetUserById(ctx context.Context, id string) (*model.User, error) {
	return f.user, f.err
}

type fakeVideoRepo struct {
	count    int64
	countErr error

	inserted  []*mongo.Video
	insertErr error

	existing map[string]bool
	existErr error

	videos []*mongo.Video
	total  int64

	byID      map[string]*mongo.Video
	deleted   []string
	deleteErr error
}

func (f *fakeVideoRepo) Insert(ctx context.Context, video *mongo.Video) (*mongo.Video, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	video.CreatedAt = time.Now().UTC()
	video.UpdatedAt = video.CreatedAt
	f.inserted = append(f.inserted, video)
	return video, nil
}

func (f *fakeVideoRepo) ExistsBySourceURL(ctx context.Context, userID string, videoURL string) (bool, error) {
	if f.existErr != nil {
		return false, f.existErr
	}
	return f.existing[videoURL], nil
}

func (f *fakeVideoRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count + int64(len(f.inserted)), nil
}

func (f *fakeVideoRepo) FindByBusiness(ctx context.Context, businessID string, skip, limit int64) ([]*mongo.Video, int64, error) {
	return f.videos, f.total, nil
}

func (f *fakeVideoRepo) GetById(ctx context.Context, id string) (*mongo.Video, error) {
	return f.byID[id], nil
}

func (f *fakeVideoRepo) DeleteById(ctx context.Context, id string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

func newTestLimits(user *model.User, userErr error, videoRepo *fakeVideoRepo) *limitsServiceImpl {
	return &limitsServiceImpl{
		userRepo:  &fakeUserRepo{user: user, err: userErr},
		videoRepo: videoRepo,
		quota:     config.QuotaConfig{Free: 10, Pro: 100, Enterprise: 1000},
	}
}

func proUser() *model.User {
	return &model.User{ID: "u1", SubscriptionPlan: consts.PlanPro}
}

func TestCheckLimitAllowed(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{count: 40})

	quota := svc.CheckLimit(context.Background(), "u1", 5)

	assert.True(t, quota.Allowed)
	assert.Equal(t, int64(40), quota.CurrentCount)
	assert.Equal(t, int64(100), quota.Limit)
	assert.Equal(t, int64(60), quota.Remaining)
	assert.Equal(t, consts.PlanPro, quota.Subscription)
}

func TestCheckLimitExactlyAtLimit(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{count: 95})

	assert.True(t, svc.CheckLimit(context.Background(), "u1", 5).Allowed)
	assert.False(t, svc.CheckLimit(context.Background(), "u1", 6).Allowed)
}

func TestCheckLimitOverLimit(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{count: 120})

	quota := svc.CheckLimit(context.Background(), "u1", 1)

	assert.False(t, quota.Allowed)
	assert.Equal(t, int64(0), quota.Remaining, "remaining never goes negative")
}

func TestCheckLimitUnknownUserFallsBackToFree(t *testing.T) {
	svc := newTestLimits(nil, nil, &fakeVideoRepo{count: 3})

	quota := svc.CheckLimit(context.Background(), "ghost", 1)

	assert.Equal(t, consts.PlanFree, quota.Subscription)
	assert.Equal(t, int64(10), quota.Limit)
}

func TestCheckLimitUserLookupErrorFallsBackToFree(t *testing.T) {
	svc := newTestLimits(nil, errors.New("mysql down"), &fakeVideoRepo{count: 0})

	quota := svc.CheckLimit(context.Background(), "u1", 1)

	assert.Equal(t, consts.PlanFree, quota.Subscription)
	assert.True(t, quota.Allowed)
}

func TestCheckLimitCountErrorDenies(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{countErr: errors.New("mongo down")})

	quota := svc.CheckLimit(context.Background(), "u1", 1)

	assert.False(t, quota.Allowed, "usage count failure must fail closed")
	assert.Equal(t, int64(0), quota.Remaining)
}

func TestUsageStats(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{count: 25})

	stats := svc.UsageStats(context.Background(), "u1")

	assert.Equal(t, "u1", stats.UserID)
	assert.Equal(t, int64(25), stats.VideosThisMonth)
	assert.Equal(t, int64(100), stats.MonthlyLimit)
	assert.Equal(t, int64(75), stats.Remaining)
	assert.Equal(t, 25.0, stats.UsagePercentage)

	periodStart, err := time.Parse(time.RFC3339, stats.PeriodStart)
	require.NoError(t, err)
	assert.Equal(t, 1, periodStart.Day())
}

func TestUsageStatsZeroLimit(t *testing.T) {
	svc := newTestLimits(proUser(), nil, &fakeVideoRepo{count: 5})
	svc.quota = config.QuotaConfig{}

	stats := svc.UsageStats(context.Background(), "u1")

	assert.Equal(t, 0.0, stats.UsagePercentage, "zero limit must not divide by zero")
	assert.Equal(t, int64(0), stats.Remaining)
}

func TestSubscriptionLimits(t *testing.T) {
	svc := newTestLimits(nil, nil, &fakeVideoRepo{})

	limits := svc.SubscriptionLimits()

	assert.Equal(t, 10, limits.Limits[consts.PlanFree])
	assert.Equal(t, 100, limits.Limits[consts.PlanPro])
	assert.Equal(t, 1000, limits.Limits[consts.PlanEnterprise])
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2025, time.March, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), monthStart(now))
}
