package http

import (
	"fmt"
	"math"
	"net"
	"net/http"
)

// RateLimitMiddleware rejects clients that exhausted their request allowance,
// advertising when they may retry.
func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			seconds := int(math.Ceil(limiter.RetryAfter(ip).Seconds()))
			w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded", "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
