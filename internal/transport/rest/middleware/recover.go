package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 response. onError, if given, replaces the default
// handling, which logs the panic with its request path.
func Recover(logger *zap.Logger, onError ...func(error, *http.Request)) mux.MiddlewareFunc {
	handleError := func(err error, r *http.Request) {
		logger.Error("recovered from panic", zap.String("path", r.URL.Path), zap.Error(err))
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				var err error
				switch x := rec.(type) {
				case error:
					err = x
				case string:
					err = errors.New(x)
				default:
					err = fmt.Errorf("unknown panic: %v", x)
				}
				handleError(err, r)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
