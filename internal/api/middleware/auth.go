package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	identityClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/identityservice"
)

const (
	msgMissingToken        = "отсутствует bearer-токен"
	msgInvalidToken        = "невалидный или просроченный токен"
	msgIdentityUnavailable = "сервис аутентификации временно недоступен"
)

// IdentityClient интерфейс клиента identity-сервиса
type IdentityClient interface {
	Verify(ctx context.Context, token string) (*domain.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type principalContextKey struct{}

// PrincipalFromContext достает аутентифицированного пользователя из context.
// Возвращает nil, если запрос не прошел через Auth middleware.
func PrincipalFromContext(ctx context.Context) *domain.Principal {
	principal, _ := ctx.Value(principalContextKey{}).(*domain.Principal)
	return principal
}

// Auth middleware проверяет bearer-токен через identity-сервис и кладет
// полученного principal в context запроса
func Auth(client IdentityClient, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := client.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, identityClient.ErrUnauthenticated) {
					log.Warn("auth: token rejected: %v", err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				log.Error("auth: identity service failed: %v", err)
				handlers.RespondServiceUnavailable(w, msgIdentityUnavailable)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken достает токен из заголовка Authorization
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
