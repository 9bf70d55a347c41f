package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/FroiVa/Sipp/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

// bucket counts requests from one IP inside the current window.
type bucket struct {
	count     int
	windowEnd time.Time
}

// limiter is a sliding-window request limiter keyed by client IP. Each
// limiter owns its bucket map; a purge loop evicts IPs whose window has
// lapsed so the map does not grow with every client ever seen.
type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	nombre  string
	limit   int
	window  time.Duration
	mensaje string
}

func newLimiter(nombre string, limit int, window time.Duration, mensaje string) *limiter {
	l := &limiter{
		buckets: make(map[string]*bucket),
		nombre:  nombre,
		limit:   limit,
		window:  window,
		mensaje: mensaje,
	}
	go l.purgeLoop()
	return l
}

// permitir counts the request and reports whether it fits in the window,
// returning the window end for the Retry-After header.
func (l *limiter) permitir(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[ip]
	if b == nil {
		b = &bucket{}
		l.buckets[ip] = b
	}
	if now.After(b.windowEnd) {
		b.count = 0
		b.windowEnd = now.Add(l.window)
	}
	b.count++
	return b.count <= l.limit, b.windowEnd
}

// purge drops every bucket whose window ended before now and returns how
// many were removed.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	purged := 0
	for ip, b := range l.buckets {
		if now.After(b.windowEnd) {
			delete(l.buckets, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().
			Str("limiter", l.nombre).
			Int("purged", purged).
			Int("remaining", len(l.buckets)).
			Msg("rate limiter buckets purged")
	}
	return purged
}

func (l *limiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for range ticker.C {
		l.purge(time.Now())
	}
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.permitir(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter("login", 20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter limits general API traffic per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter("api", limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
