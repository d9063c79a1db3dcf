package web

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"

	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	if value := ctx.Value(requestIDKey); value != nil {
		if requestID, ok := value.(string); ok {
			return requestID
		}
	}
	return ""
}

// csrfMiddleware issues the csrftoken cookie on safe requests and requires
// unsafe ones to echo it in the X-CSRFToken header.
func csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CSRFCookieName)
		hasCookie := err == nil && cookie.Value != ""

		if !isMutatingMethod(r.Method) {
			if !hasCookie {
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    strings.ReplaceAll(uuid.NewString(), "-", ""),
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(r.Header.Get(CSRFHeaderName))
		if !hasCookie || header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			writeError(w, http.StatusForbidden, "csrf_failed", "CSRF token missing or incorrect", requestIDFromContext(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isMutatingMethod returns true for HTTP verbs that mutate state.
func isMutatingMethod(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
