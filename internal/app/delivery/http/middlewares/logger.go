package middlewares

import (
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access log line per request.
func (m *Middlewares) RequestLogger(appConfig config.App, log *logrus.Logger) func(next http.Handler) http.Handler {
	tz, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		log.Warnf("Invalid time zone %q: %v", appConfig.Timezone, err)
		tz = time.UTC
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"request_id": utils.GetRequestID(r.Context()),
				"time":       time.Now().In(tz).Format(time.RFC850),
				"remote":     r.RemoteAddr,
				"method":     r.Method,
				"uri":        r.RequestURI,
				"status":     rec.statusCode,
				"duration":   time.Since(start).String(),
			}).Info("access")
		})
	}
}
