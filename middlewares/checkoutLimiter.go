package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// checkoutIdle is how long a bucket takes to refill completely; a client
// unseen for that long is dropped, since a fresh bucket is identical.
const checkoutIdle = time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CheckoutLimiter throttles checkout-session creation per client IP with a
// token bucket, so a client cannot open provider sessions in a tight loop.
type CheckoutLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	now       func() time.Time
}

// NewCheckoutLimiter allows perMinute sessions per IP with an equal burst.
// perMinute <= 0 disables throttling.
func NewCheckoutLimiter(perMinute int) *CheckoutLimiter {
	l := &CheckoutLimiter{
		visitors: make(map[string]*visitor),
		burst:    perMinute,
		now:      time.Now,
	}
	if perMinute > 0 {
		l.limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	l.lastSweep = l.now()
	return l
}

func (l *CheckoutLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= checkoutIdle {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for at least checkoutIdle. Callers hold mu.
func (l *CheckoutLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= checkoutIdle {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

func (l *CheckoutLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.burst <= 0 {
			c.Next()
			return
		}
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try later."})
			return
		}
		c.Next()
	}
}
