package security

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"auth-web-server/internal/model"
	"auth-web-server/internal/util"
)

// Authenticator проверяет bearer токен запроса: чёрный список,
// подпись и claims, существование пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, *Claims, error)
}

// JWTMiddleware закрывает маршруты аутентификацией по bearer токену.
// Различимые для клиента случаи: токен не передан, отозван, просрочен.
func JWTMiddleware(authenticator Authenticator) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(authenticator, next))
	}
}

func handleAuthentication(authenticator Authenticator, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			util.HandleError(writer, model.ErrTokenMissing.Error(), http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		user, claims, err := authenticator.Authenticate(request.Context(), token)
		if err != nil {
			log.Printf("запрос не прошел аутентификацию: %v", err)
			switch {
			case errors.Is(err, model.ErrTokenRevoked):
				util.HandleError(writer, model.ErrTokenRevoked.Error(), http.StatusUnauthorized)
			case errors.Is(err, model.ErrTokenExpired):
				util.HandleError(writer, model.ErrTokenExpired.Error(), http.StatusUnauthorized)
			default:
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
			}
			return
		}

		ctx := context.WithValue(request.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	}
}

// RequireRole дополнительно к аутентификации требует роль не ниже заданной
func RequireRole(role model.Role) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := GetClaimsFromContext(request.Context())
			if err != nil {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.Role != role && claims.Role != model.RoleAdmin {
				util.HandleError(writer, model.ErrAccessDenied.Error(), http.StatusForbidden)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
