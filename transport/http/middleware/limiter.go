package middleware

import (
	"errors"
	"net/http"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownCaller     = "unknown"
)

// RateLimit counts requests per caller in a fixed Redis window. A caller is the acting user
// when the front-end names one, otherwise the client address. Cache failures let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getCaller(r))

			var count int
			if err := a.cache.Get(r.Context(), cacheKey, &count); err != nil {
				if !errors.Is(err, cache.Nil) {
					log.Warn().Err(err).Str("key", cacheKey).Msg("rate limiter unavailable")
					next.ServeHTTP(w, r)

					return
				}
			}

			count++

			if count > limiter.MaxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(limiter.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, count, limiter.WindowSeconds); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getCaller(r *http.Request) string {
	if actor := strings.TrimSpace(r.Header.Get(constant.RequestHeaderActorID)); actor != "" {
		return "actor:" + actor
	}

	return "ip:" + a.getClientIP(r)
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownCaller
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
