package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id attached by withRequestID, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}

const (
	maxTrackedClients = 10000
	limiterIdleTTL    = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	maxClients int
	idleTTL    time.Duration
	now        func() time.Time
}

func newIPRateLimiter(limit float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(limit),
		burst:      burst,
		maxClients: maxTrackedClients,
		idleTTL:    limiterIdleTTL,
		now:        time.Now,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	c, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evict(now)
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// evict drops clients idle longer than idleTTL. If none are idle, the least
// recently seen client goes. Caller holds mu.
func (l *ipRateLimiter) evict(now time.Time) {
	var oldestIP string
	var oldest time.Time

	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.clients, ip)
			continue
		}
		if oldestIP == "" || c.lastSeen.Before(oldest) {
			oldestIP, oldest = ip, c.lastSeen
		}
	}

	if len(l.clients) >= l.maxClients {
		delete(l.clients, oldestIP)
	}
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	tooMany := ComponentHandler(func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		w.Header().Set("Retry-After", "1")
		return errorResponse(get429(), nil)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			slog.Warn("rate limit exceeded",
				"remote_addr", r.RemoteAddr,
				"request_id", RequestID(r.Context()))
			tooMany.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
