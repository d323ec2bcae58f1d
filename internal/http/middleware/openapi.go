package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
)

// OpenAPIValidator rejects requests whose parameters or body do not match doc.
// Requests for operations doc does not describe are rejected as well.
func OpenAPIValidator(doc *openapi3.T, log *slog.Logger) (func(http.Handler) http.Handler, error) {
	// Servers pin a host. Matching must work behind any host name.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("new openapi router: %w", err)
	}

	opts := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				status := http.StatusNotFound
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					status = http.StatusMethodNotAllowed
				}
				w.WriteHeader(status)
				return
			}

			if err := openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    opts,
			}); err != nil {
				log.InfoContext(r.Context(), "request does not match api contract", slog.Any("error", err))

				res := apierr.New(err)
				if res.StatusCode == http.StatusInternalServerError {
					res = apierr.New(apperr.ValidationErr.WithMsg(err.Error()))
				}
				//nolint:errcheck
				apierr.Write(w, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
