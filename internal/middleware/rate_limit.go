package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Buckets idle longer than bucketIdleTTL are swept, but only once more than
// sweepAbove clients are tracked.
const (
	sweepAbove    = 500
	bucketIdleTTL = 10 * time.Minute
)

// LoginLimiter throttles login attempts with one token bucket per client IP.
type LoginLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*clientBucket
	now     func() time.Time
}

type clientBucket struct {
	tokens  *rate.Limiter
	touched time.Time
}

// NewLoginLimiter allows perMinute attempts per client, with bursts of up to burst.
func NewLoginLimiter(perMinute float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		limit:   rate.Limit(perMinute / 60),
		burst:   burst,
		buckets: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

// Allow spends one token for ip. When none is left it reports how long the
// client has to wait; a zero wait with ok false means the request can never pass.
func (l *LoginLimiter) Allow(ip string) (ok bool, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > sweepAbove {
		l.sweep(now)
	}

	b := l.buckets[ip]
	if b == nil {
		b = &clientBucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.touched = now

	res := b.tokens.ReserveN(now, 1)
	if !res.OK() {
		return false, 0
	}
	if wait = res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

func (l *LoginLimiter) sweep(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.touched) > bucketIdleTTL {
			delete(l.buckets, ip)
		}
	}
}

// RateLimitMiddleware answers 429 once a client IP has spent its login budget.
func RateLimitMiddleware(limiter *LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := limiter.Allow(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		if wait > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
		utils.LogWarn(nil, "RateLimitMiddleware: rejected request from "+c.ClientIP())
		utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests,
			"Too many attempts, please try again later", ""))
	}
}
