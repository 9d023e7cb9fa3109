package instagram

import (
	log "log/slog"
	"math/rand"
	"sync"
	"time"
)

// RateLimiterStats 限速器状态快照
type RateLimiterStats struct {
	RequestsThisHour int       `json:"requests_this_hour"`
	WindowStart      time.Time `json:"window_start"`
	LastRequest      time.Time `json:"last_request"`
	RateLimitActive  bool      `json:"rate_limit_active"`
}

// RateLimiter 对上游的出站请求限速：小时滚动窗口上限 + 最小请求间隔 + 随机抖动。
// 窗口从自身起点计时，跨过窗口长度后重置，不对齐整点。
type RateLimiter struct {
	mu sync.Mutex

	maxPerWindow int
	window       time.Duration
	minDelay     time.Duration
	jitterMin    time.Duration
	jitterMax    time.Duration

	windowStart time.Time
	requests    int
	lastRequest time.Time
}

func NewRateLimiter(maxPerHour int, minDelay time.Duration) *RateLimiter {
	return &RateLimiter{
		maxPerWindow: maxPerHour,
		window:       time.Hour,
		minDelay:     minDelay,
		jitterMin:    500 * time.Millisecond,
		jitterMax:    1500 * time.Millisecond,
		windowStart:  time.Now(),
	}
}

// Acquire 阻塞直到可以安全发起下一次请求，然后记账。
// 该调用只会延迟，不会失败。互斥锁贯穿整个等待过程，出站请求因此天然串行。
func (s *RateLimiter) Acquire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	// 窗口自然过期后重置计数
	if now.Sub(s.windowStart) > s.window {
		s.requests = 0
		s.windowStart = now
	}

	// 达到窗口上限：等待窗口剩余时间
	if s.requests >= s.maxPerWindow {
		wait := s.window - now.Sub(s.windowStart)
		if wait > 0 {
			log.Warn("rate limit reached, waiting", "wait", wait.Round(time.Second))
			time.Sleep(wait)
		}
		s.requests = 0
		s.windowStart = time.Now()
		now = s.windowStart
	}

	// 距上次请求不足最小间隔则补足
	if !s.lastRequest.IsZero() {
		if since := now.Sub(s.lastRequest); since < s.minDelay {
			time.Sleep(s.minDelay - since)
		}
	}

	// 随机抖动，避免固定节奏特征
	if s.jitterMax > s.jitterMin {
		time.Sleep(s.jitterMin + time.Duration(rand.Int63n(int64(s.jitterMax-s.jitterMin))))
	}

	s.requests++
	s.lastRequest = time.Now()
}

// Stats 返回当前限速状态
func (s *RateLimiter) Stats() RateLimiterStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return RateLimiterStats{
		RequestsThisHour: s.requests,
		WindowStart:      s.windowStart,
		LastRequest:      s.lastRequest,
		RateLimitActive:  s.requests >= s.maxPerWindow,
	}
}
