package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
)

// RateLimit sheds load above rps requests per second with a token bucket shared by
// every client. A non-positive rps disables it.
func RateLimit(rps float64, burst int, log *slog.Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	res := apierr.New(apperr.TooManyRequestsErr)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("path", r.URL.Path))

				w.Header().Set("Retry-After", "1")
				//nolint:errcheck
				apierr.Write(w, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
