package middleware

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
	body          *bytes.Buffer
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

// Status returns the HTTP status code
func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func wrapResponseWriter(w http.ResponseWriter) *responseCaptureWriter {
	return &responseCaptureWriter{
		ResponseWriter: w,
		statusCode:     0,
		statusWritten:  false,
		body:           &bytes.Buffer{},
	}
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RealIPHeader)) > 0 {
		return r.Header.Get(conf.RealIPHeader)
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RequestIDHeader)) > 0 {
		return r.Header.Get(conf.RequestIDHeader)
	}
	return uuid.New().String()
}

func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := getRequestID(r, conf)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.RequestURI,
					"method":     r.Method,
				})

				fieldsLogger.WithFields(logrus.Fields{
					"host":       r.Host,
					"ip":         getRealIP(r, conf),
					"user-agent": r.UserAgent(),
				}).Info("request started")

				ctx := context.WithValue(r.Context(), constants.LoggerKey, fieldsLogger)
				ctx = context.WithValue(ctx, constants.RequestStart, start)

				w.Header().Set("X-Request-Id", requestID)

				wrappedWriter := wrapResponseWriter(w)

				// Recover from panics, log them with full context, and return a stable response.
				defer func() {
					if recovered := recover(); recovered != nil {
						fieldsLogger.WithFields(logrus.Fields{
							"panic":       recovered,
							"stack":       string(debug.Stack()),
							"remote_addr": getRealIP(r, conf),
							"duration":    time.Since(start),
						}).Error("panic recovered in request handler")

						if !wrappedWriter.statusWritten {
							http.Error(wrappedWriter, "Internal Server Error", http.StatusInternalServerError)
						}
					}
				}()

				next.ServeHTTP(wrappedWriter, r.WithContext(ctx))

				statusCode := wrappedWriter.Status()
				fieldsLogger.WithFields(logrus.Fields{
					"duration":     time.Since(start),
					"completed":    true,
					"status-code":  statusCode,
					"status-class": statusCode / 100,
				}).Info("request completed")
			},
		)
	}
}
