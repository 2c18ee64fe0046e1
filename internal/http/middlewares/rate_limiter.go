package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c echo.Context) string

// ByCaller counts authenticated requests per subject and anonymous ones per
// client IP.
func ByCaller(c echo.Context) string {
	if subject := SubjectID(c); subject != "" {
		return "sub:" + subject
	}
	return "ip:" + c.RealIP()
}

// ByIP counts every request per client IP. It runs ahead of authentication so
// requests with bad or missing credentials are counted too.
func ByIP(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// RateLimiter allows limit requests per key in each fixed window. A
// non-positive limit disables it.
func RateLimiter(limit int, window time.Duration, key KeyFunc) echo.MiddlewareFunc {
	return rateLimiter(limit, window, key, time.Now)
}

func rateLimiter(limit int, window time.Duration, key KeyFunc, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu         sync.Mutex
		buckets    = make(map[string]*bucket)
		lastPruned time.Time
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 {
			return next
		}

		return func(c echo.Context) error {
			t := now()
			k := key(c)

			mu.Lock()
			if t.Sub(lastPruned) > window {
				for name, b := range buckets {
					if t.Sub(b.start) > window {
						delete(buckets, name)
					}
				}
				lastPruned = t
			}

			b, ok := buckets[k]
			if !ok || t.Sub(b.start) > window {
				b = &bucket{start: t}
				buckets[k] = b
			}

			if b.count >= limit {
				retryAfter := window - t.Sub(b.start)
				mu.Unlock()
				c.Response().Header().Set("Retry-After", formatSeconds(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}

func formatSeconds(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
