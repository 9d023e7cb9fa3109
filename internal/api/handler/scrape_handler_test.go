package handler

import (
	"Anatome/internal/api/dto"
	"Anatome/internal/pkg/instagram"
	"Anatome/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScrapeService struct {
	acceptedMax int
	scrapeOne   *dto.VideoDTO
	oneErr      error
}

func (f *fakeScrapeService) ScrapeProfile(ctx context.Context, username, userID, socialProfileID, businessID string, maxVideos int) *service.ScrapeResult {
	return nil
}

func (f *fakeScrapeService) ScrapeOne(ctx context.Context, videoURL, userID, socialProfileID, businessID string) (*dto.VideoDTO, error) {
	return f.scrapeOne, f.oneErr
}

func (f *fakeScrapeService) RunProfileScrape(username, userID, socialProfileID, businessID string, maxVideos int) {
	f.acceptedMax = maxVideos
}

func (f *fakeScrapeService) GetScrapeStatus(ctx context.Context, userID, username string) (*dto.ScrapeStatusDTO, error) {
	return &dto.ScrapeStatusDTO{UserID: userID, Username: username, Status: "completed"}, nil
}

func (f *fakeScrapeService) GetProfileInfo(ctx context.Context, username string) (*instagram.ProfileInfo, error) {
	return &instagram.ProfileInfo{Username: username}, nil
}

type fakeLimitsService struct {
	quota *dto.QuotaCheckDTO
}

func (f *fakeLimitsService) CheckLimit(ctx context.Context, userID string, requested int) *dto.QuotaCheckDTO {
	return f.quota
}

func (f *fakeLimitsService) UsageStats(ctx context.Context, userID string) *dto.UsageStatsDTO {
	return &dto.UsageStatsDTO{UserID: userID}
}

func (f *fakeLimitsService) SubscriptionLimits() *dto.LimitsDTO {
	return &dto.LimitsDTO{}
}

func doScrapeProfile(t *testing.T, h *ScrapeHandler, body interface{}) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "u1")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/scrape/profile", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ScrapeProfile(c)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestScrapeProfileAccepted(t *testing.T) {
	scrapeSvc := &fakeScrapeService{}
	h := NewScrapeHandler(scrapeSvc, &fakeLimitsService{
		quota: &dto.QuotaCheckDTO{Allowed: true, Remaining: 50},
	})

	_, resp := doScrapeProfile(t, h, dto.ScrapeProfileDTO{
		Username:        "alice",
		SocialProfileID: "sp1",
		BusinessID:      "biz1",
		MaxVideos:       5,
	})

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, 5, scrapeSvc.acceptedMax)
}

func TestScrapeProfileClampsToRemainingQuota(t *testing.T) {
	scrapeSvc := &fakeScrapeService{}
	h := NewScrapeHandler(scrapeSvc, &fakeLimitsService{
		quota: &dto.QuotaCheckDTO{Allowed: true, Remaining: 3},
	})

	_, resp := doScrapeProfile(t, h, dto.ScrapeProfileDTO{
		Username:        "alice",
		SocialProfileID: "sp1",
		BusinessID:      "biz1",
		MaxVideos:       10,
	})

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, 3, scrapeSvc.acceptedMax, "request beyond quota should be clamped to remaining")
}

func TestScrapeProfileQuotaExhausted(t *testing.T) {
	scrapeSvc := &fakeScrapeService{acceptedMax: -1}
	h := NewScrapeHandler(scrapeSvc, &fakeLimitsService{
		quota: &dto.QuotaCheckDTO{Allowed: false, Remaining: 0, Subscription: "free"},
	})

	w, resp := doScrapeProfile(t, h, dto.ScrapeProfileDTO{
		Username:        "alice",
		SocialProfileID: "sp1",
		BusinessID:      "biz1",
		MaxVideos:       10,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 429, resp.Code)
	assert.NotNil(t, resp.Data, "quota payload should accompany the rejection")
	assert.Equal(t, -1, scrapeSvc.acceptedMax, "no scrape should start")
}

func TestScrapeProfileInvalidUsername(t *testing.T) {
	h := NewScrapeHandler(&fakeScrapeService{}, &fakeLimitsService{
		quota: &dto.QuotaCheckDTO{Allowed: true, Remaining: 50},
	})

	_, resp := doScrapeProfile(t, h, dto.ScrapeProfileDTO{
		Username:        "bad name!",
		SocialProfileID: "sp1",
		BusinessID:      "biz1",
	})

	assert.Equal(t, 400, resp.Code)
}

func TestScrapeProfileDefaultsMaxVideos(t *testing.T) {
	scrapeSvc := &fakeScrapeService{}
	h := NewScrapeHandler(scrapeSvc, &fakeLimitsService{
		quota: &dto.QuotaCheckDTO{Allowed: true, Remaining: 100},
	})

	_, resp := doScrapeProfile(t, h, dto.ScrapeProfileDTO{
		Username:        "alice",
		SocialProfileID: "sp1",
		BusinessID:      "biz1",
	})

	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, defaultMaxVideos, scrapeSvc.acceptedMax)
}
