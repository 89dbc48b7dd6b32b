package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

// RequestLogger пишет в лог метод, путь, статус и длительность каждого запроса.
func RequestLogger(logger *logging.Logger) func(next http.Handler) http.Handler {
	fn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.
				WithField("status", ww.Status()).
				WithField("bytes", ww.BytesWritten()).
				WithField("took", time.Since(start).String()).
				Tracef("%s %s", r.Method, r.URL.Path)
		})
	}
	return fn
}
