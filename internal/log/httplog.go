package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id set by HTTPMiddleware
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code and body size written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// HTTPMiddleware logs every request with its method, path, status, duration
// and size. A request id is taken from the incoming X-Request-ID header or
// generated, and echoed back on the response.
func HTTPMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()

			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, req)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			LogHTTPRequest(logger, id, req, rec.status, time.Since(start), rec.size)
		})
	}
}

// LogHTTPRequest writes a single access log entry. Server errors log at error level.
func LogHTTPRequest(logger *zap.SugaredLogger, id string, req *http.Request, status int, duration time.Duration, size int) {
	fields := []interface{}{
		"request_id", id,
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size", size,
		"remote_addr", req.RemoteAddr,
		"user_agent", req.UserAgent(),
	}

	if status >= http.StatusInternalServerError {
		logger.Errorw("http request", fields...)
		return
	}
	logger.Infow("http request", fields...)
}
