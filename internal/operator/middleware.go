package operator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// OperatorContextKey is the key for storing the operator Context in the
	// request context
	OperatorContextKey ContextKey = "operatorContext"

	// HeaderOperatorID is set by the scanning station frontend.
	HeaderOperatorID = "X-Operator-ID"
)

// Middleware extracts the station operator from the request header and
// injects their profile into the request context. A request without the
// header proceeds without operator context; scans are then recorded
// unattributed. Stations that have never checked in before get an empty
// profile on first sight.
func Middleware(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID := r.Header.Get(HeaderOperatorID)
			if operatorID == "" {
				slog.Debug("no operator header provided")
				next.ServeHTTP(w, r)
				return
			}

			profile, err := service.GetProfile(operatorID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					slog.Info("operator profile not found, initializing empty profile",
						"operator_id", operatorID,
					)
					profile = &Profile{
						OperatorID:  operatorID,
						Preferences: json.RawMessage(`{}`),
					}
				} else {
					slog.Warn("failed to get operator profile from database",
						"operator_id", operatorID,
						"error", err,
					)
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), OperatorContextKey, &Context{Profile: profile})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts the operator Context from a request context.
// Returns nil when the request carried no operator header.
func FromContext(ctx context.Context) *Context {
	operatorCtx, ok := ctx.Value(OperatorContextKey).(*Context)
	if !ok {
		return nil
	}
	return operatorCtx
}

// ID returns the operator id from the context, or "" when unattributed.
func ID(ctx context.Context) string {
	operatorCtx := FromContext(ctx)
	if operatorCtx == nil || operatorCtx.Profile == nil {
		return ""
	}
	return operatorCtx.OperatorID
}
