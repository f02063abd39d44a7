package middlewares

import (
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles per caller: the signed-in user when known, else the client IP.
// A caller that exceeds the limit is blocked for blockTime.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
}

func NewRateLimiter(requests int, per, blockTime time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
	}
}

func (rl *RateLimiter) Limit(m *Middlewares) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			key := callerKey(req)

			rl.mu.Lock()
			if blockedUntil, found := rl.blocked[key]; found {
				if time.Now().Before(blockedUntil) {
					rl.mu.Unlock()
					w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(time.Until(blockedUntil).Seconds())+1))
					utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
					return
				}
				delete(rl.blocked, key)
			}

			limiter, exists := rl.limiters[key]
			if !exists {
				limiter = rate.NewLimiter(rate.Every(rl.per), rl.requests)
				rl.limiters[key] = limiter
			}
			rl.mu.Unlock()

			if !limiter.Allow() {
				rl.mu.Lock()
				rl.blocked[key] = time.Now().Add(rl.blockTime)
				rl.mu.Unlock()

				w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(rl.blockTime.Seconds())))
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

func callerKey(req *http.Request) string {
	if principal := utils.GetPrincipal(req.Context()); principal != nil {
		return "user:" + principal.UserID
	}
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "ip:" + req.RemoteAddr
	}
	return "ip:" + ip
}
