package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
	"hrportal/internal/transport/http/api"
)

type ctxKey string

const ctxKeyActor ctxKey = "actor"

// DepartmentResolver fills in the actor's department, which the approvals
// filter and request submissions need.
type DepartmentResolver interface {
	DepartmentsByUserID(ctx context.Context, userIDs []string) (map[string]string, error)
}

// Auth parses a bearer token when present and stores the actor in the
// context. Requests without a valid token pass through anonymous; route
// groups decide with RequireAuth.
func Auth(secret string, departments DepartmentResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor := request.Actor{
				UserID: claims.UserID,
				Name:   claims.Name,
				Role:   auth.ParseRole(claims.Role),
			}
			if departments != nil {
				if depts, err := departments.DepartmentsByUserID(r.Context(), []string{actor.UserID}); err == nil {
					actor.Department = depts[actor.UserID]
				}
			}

			ctx := context.WithValue(r.Context(), ctxKeyActor, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActor(ctx context.Context) (request.Actor, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(request.Actor)
	return actor, ok
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetActor(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability gates a route group on a role predicate such as
// auth.CanApprove.
func RequireCapability(allowed func(auth.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if !allowed(actor.Role) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
