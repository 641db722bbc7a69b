package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	limit rate.Limit = 1
	burst            = 3
)

// Configure sets the per-client rate (requests/second) and burst. Existing visitors keep their
// limiter until they are cleaned up.
func Configure(rps float64, b int) {
	mu.Lock()
	defer mu.Unlock()

	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if b > 0 {
		burst = b
	}
}

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(limit, burst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// CleanupVisitors drops clients idle for longer than idle.
func CleanupVisitors(idle time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	for ip, v := range visitors {
		if time.Since(v.lastSeen) > idle {
			delete(visitors, ip)
		}
	}
}

func StartVisitorCleanupLoop(done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			CleanupVisitors(5 * time.Minute)
		}
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()

	visitors = make(map[string]*clientLimiter)
}
