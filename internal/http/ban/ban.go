// Package ban tracks rate-limit strikes per client and bans repeat offenders. State lives in
// Redis; without a Redis service every call is a no-op.
package ban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shaikazeem2001/inventory/internal/redissvc"
)

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikeKeyFmt   = "ratelimit:strikes:%s"
	banKeyFmt      = "ratelimit:ban:%s"
	// strikes expire when a client stays quiet this long
	strikeWindow = 10 * time.Minute
)

var (
	mu      sync.RWMutex
	rdb     *redis.Client
	ctx     = context.Background()
	strikes = 5
	banTTL  = 15 * time.Minute
)

func SetRedisService(rs *redissvc.RedisService) {
	mu.Lock()
	defer mu.Unlock()

	if rs == nil {
		rdb = nil
		return
	}
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

// Configure sets how many strikes lead to a ban and how long the ban lasts.
func Configure(maxStrikes int, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	if maxStrikes > 0 {
		strikes = maxStrikes
	}
	if ttl > 0 {
		banTTL = ttl
	}
}

func client() (*redis.Client, context.Context, int, time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	return rdb, ctx, strikes, banTTL
}

// IsBanned reports whether target is currently banned.
func IsBanned(target string) bool {
	rdb, ctx, _, _ := client()
	if rdb == nil {
		return false
	}
	n, err := rdb.Exists(ctx, fmt.Sprintf(banKeyFmt, target)).Result()
	if err != nil {
		log.Printf("ban lookup failed for %s: %v", target, err)
		return false
	}
	return n > 0
}

// RegisterStrike counts a rate-limit rejection and bans target once it reaches the configured
// number of strikes. It reports whether the client is now banned.
func RegisterStrike(target, route string) bool {
	rdb, ctx, maxStrikes, ttl := client()
	if rdb == nil {
		return false
	}

	key := fmt.Sprintf(strikeKeyFmt, target)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("strike count failed for %s: %v", target, err)
		return false
	}
	_ = rdb.Expire(ctx, key, strikeWindow).Err()

	if int(count) < maxStrikes {
		return false
	}

	if err := rdb.Set(ctx, fmt.Sprintf(banKeyFmt, target), route, ttl).Err(); err != nil {
		log.Printf("ban failed for %s: %v", target, err)
		return false
	}
	_ = rdb.Del(ctx, key).Err()

	log.Printf("⛔ Banned %s on %s after %d strikes for %s", target, route, count, ttl)
	logBanEvent(rdb, ctx, target, route, int(count))
	return true
}

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

func logBanEvent(rdb *redis.Client, ctx context.Context, target, route string, strikes int) {
	entry := BanLogEntry{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Time:    time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

func StartDailyBanSummary(done <-chan struct{}, interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}

		select {
		case <-done:
			return
		case <-time.After(time.Until(next)):
			if summary, err := DailyBanSummary(); err == nil && summary != "" {
				log.Print(summary)
			}
		}
	}
}

// DailyBanSummary drains the ban log and renders it as text. An empty log yields "".
func DailyBanSummary() (string, error) {
	rdb, ctx, _, _ := client()
	if rdb == nil {
		return "", errors.New("ban summary needs Redis")
	}

	entries, err := rdb.LRange(ctx, DailyBanLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return "", err
	}
	_ = rdb.Del(ctx, DailyBanLogKey).Err() // clear after reading

	var logs []BanLogEntry
	for _, item := range entries {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
		}
	}
	return FormatSummary(logs), nil
}

func FormatSummary(logs []BanLogEntry) string {
	routeCounts := make(map[string]int)
	targetCounts := make(map[string]int)
	for _, entry := range logs {
		routeCounts[entry.Route]++
		targetCounts[entry.Target]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Daily ban summary: %d bans\n", len(logs))

	sb.WriteString("By route:\n")
	for _, route := range sortedKeys(routeCounts) {
		fmt.Fprintf(&sb, "  %s: %d\n", route, routeCounts[route])
	}

	sb.WriteString("By client:\n")
	for _, target := range sortedKeys(targetCounts) {
		fmt.Fprintf(&sb, "  %s: %d\n", target, targetCounts[target])
	}

	sb.WriteString("Full log:\n")
	for _, entry := range logs {
		fmt.Fprintf(&sb, "  %s on %s (%d strikes) at %s\n",
			entry.Target, entry.Route, entry.Strikes, entry.Time.Format(time.RFC822))
	}
	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
