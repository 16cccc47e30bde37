package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/metrics"
	apisvc "github.com/0101Programmer/orderManagementSystem/internal/service/api"
	"github.com/0101Programmer/orderManagementSystem/internal/service/orders"
	websvc "github.com/0101Programmer/orderManagementSystem/internal/service/web"
)

// newHTTPHandler собирает роутер JSON API и веб-форм поверх одного сервиса заказов.
func newHTTPHandler(svc *orders.Service, httpMetrics *metrics.HTTPMetrics, logger *log.Entry) (http.Handler, error) {
	web, err := websvc.NewHandler(svc, logger.WithField("layer", "web"))
	if err != nil {
		return nil, err
	}
	api := apisvc.NewHandler(svc, logger.WithField("layer", "api"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog(logger.WithField("layer", "http")))
	r.Use(middleware.Recoverer)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	api.Routes(r)
	web.Routes(r)

	return r, nil
}

// accessLog пишет одну строку logrus на каждый запрос.
func accessLog(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := logger.WithFields(log.Fields{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("http request failed")
				return
			}
			entry.Debug("http request")
		})
	}
}
