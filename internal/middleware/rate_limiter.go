package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// limiter is a per-client fixed-window request counter. One instance
// backs the global API ceiling, another the stricter login gate. A
// background sweep drops clients whose window has lapsed so the map
// does not grow with every IP that ever connected.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	message string
}

type clientWindow struct {
	count int
	until time.Time
}

const sweepInterval = 5 * time.Minute

func newLimiter(limit int, window time.Duration, message string) *limiter {
	l := &limiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		message: message,
	}
	go l.sweep()
	return l
}

// allow counts the request and reports whether it fits the window,
// plus when the window closes.
func (l *limiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[ip]
	if !ok || now.After(w.until) {
		w = &clientWindow{until: now.Add(l.window)}
		l.clients[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.until
}

func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for ip, w := range l.clients {
		if now.After(w.until) {
			delete(l.clients, ip)
			dropped++
		}
	}
	return dropped
}

func (l *limiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		if dropped := l.purge(time.Now()); dropped > 0 {
			log.Debug().Int("dropped", dropped).Msg("rate limiter swept")
		}
	}
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, until := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// RateLimiter caps requests per client IP over a one-minute window.
func RateLimiter(perMinute int) gin.HandlerFunc {
	return newLimiter(perMinute, time.Minute, "too many requests, try again shortly").handler()
}

// LoginRateLimiter gates the login endpoint with a much lower ceiling
// so credential guessing stays slow.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	return newLimiter(perMinute, time.Minute, "too many login attempts, try again in a minute").handler()
}
