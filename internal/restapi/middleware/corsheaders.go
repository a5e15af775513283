package middleware

import (
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/logging"
)

func createCorsHeadersHandler(next http.Handler, conf config.CorsConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if conf.DisableCors {
			logging.LoggerFromContext(r.Context()).Info("sending headers to disable CORS. This configuration must not be used in production")
			w.Header().Set(headers.AccessControlAllowOrigin, conf.AllowOrigin)
			w.Header().Set(headers.AccessControlAllowMethods, "POST, GET, OPTIONS")
			w.Header().Set(headers.AccessControlAllowHeaders, "content-type")
			w.Header().Set(headers.AccessControlAllowCredentials, "true")
			w.Header().Set(headers.AccessControlExposeHeaders, "Location, "+RequestIDHeader)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func CorsHeadersMiddleware(conf config.CorsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(createCorsHeadersHandler(next, conf))
	}
}
