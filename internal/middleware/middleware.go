package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/utils"
)

type SessionFetcher interface {
	FindSessionByID(id string) (utils.SessionData, error)
}

// SessionExtender is implemented by fetchers that can slide a session's expiry
// forward. SessionMiddleware extends any session past its half-life so an
// active visitor never gets logged out mid-browse.
type SessionExtender interface {
	ExtendSession(id string, until time.Time) error
}

const SessionLifetime = 6 * time.Hour

func SessionMiddleware(fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil {
				http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
				return
			}

			session, err := fetcher.FindSessionByID(cookie.Value)
			if err != nil {
				http.Error(w, "Couldn't find session", http.StatusUnauthorized)
				return
			}

			if session.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Session expired", http.StatusUnauthorized)
				return
			}

			// Refresh the cookie once the session is past its half-life.
			if ext, ok := fetcher.(SessionExtender); ok {
				if time.Until(session.ExpiresAt) < SessionLifetime/2 {
					_ = ext.ExtendSession(cookie.Value, time.Now().Add(SessionLifetime))
				}
			}

			ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSessionMiddleware injects the userID when a valid session cookie is
// present but never rejects the request. Used on public endpoints that also
// report the caller's own votes.
func OptionalSessionMiddleware(fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err == nil {
				if session, err := fetcher.FindSessionByID(cookie.Value); err == nil && session.ExpiresAt.After(time.Now()) {
					ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, session.UserID)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

var defaultAllowed = map[string]struct{}{
	"http://localhost:5173":              {},
	"http://localhost:5174":              {},
	"http://localhost:3000":              {},
	"https://civicagenda.github.io":      {},
	"https://agenda-dev.civicagenda.org": {},
	"https://www.civicagenda.org":        {},
	"https://civicagenda.org":            {},
}

func allowedOrigins() map[string]struct{} {
	extra := os.Getenv("ALLOWED_ORIGINS")
	if extra == "" {
		return defaultAllowed
	}
	allowed := make(map[string]struct{}, len(defaultAllowed))
	for o := range defaultAllowed {
		allowed[o] = struct{}{}
	}
	for _, o := range strings.Split(extra, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return allowed
}

func CORSMiddleware(next http.Handler) http.Handler {
	allowed := allowedOrigins()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OriginCheckMiddleware rejects browser-originated writes from unknown sites.
// Requests without an Origin header (curl, server-to-server) pass through;
// CORS alone doesn't stop a hostile page from firing simple POSTs.
func OriginCheckMiddleware(next http.Handler) http.Handler {
	allowed := allowedOrigins()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; !ok {
				http.Error(w, "Forbidden: origin not allowed", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type User struct {
	UserID string `gorm:"primaryKey"`
	Role   string
}

func (User) TableName() string { return "app_auth.users" }

func requireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
			return
		}

		var user User
		if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
			http.Error(w, "Unauthorized: user not found", http.StatusUnauthorized)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, userID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
	})
}

// AdminMiddleware assumes SessionMiddleware already ran and put the user id
// in context; it only checks the role on the user row.
func AdminMiddleware(next http.Handler) http.Handler {
	return requireRole(next, "admin")
}

// ModeratorMiddleware admits moderators and admins.
func ModeratorMiddleware(next http.Handler) http.Handler {
	return requireRole(next, "moderator", "admin")
}
