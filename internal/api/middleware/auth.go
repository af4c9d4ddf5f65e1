package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
	msgAdminOnly     = "доступно только администратору"
)

type actorKey struct{}

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role.
// Аутентификацию выполняет gateway перед сервисом, здесь заголовкам доверяем.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role := domain.RoleUser
		switch domain.Role(r.Header.Get(HeaderUserRole)) {
		case "", domain.RoleUser:
		case domain.RoleAdmin:
			role = domain.RoleAdmin
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только администраторов. Должен стоять после Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
