package middleware

import (
	"SpindleTracker/internal/session"
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName — имя cookie с подписанным токеном сессии.
const CookieName = "sid"

// LoginPath — куда отправляем неавторизованных.
const LoginPath = "/login"

type contextKey string

const sessionKey contextKey = "session"

// SetLoginCookie подписывает токен сессии (JWT HS256) и выставляет cookie.
func SetLoginCookie(w http.ResponseWriter, s session.Session, secret string) error {
	claims := jwt.RegisteredClaims{
		ID:        s.Token,
		Subject:   s.Username,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearLoginCookie удаляет cookie сессии у клиента.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// SessionToken достаёт токен сессии из подписанной cookie.
func SessionToken(r *http.Request, secret string) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

// WithAuth кладёт в контекст сессию, если cookie валидна и сессия жива.
// Анонимные запросы проходят дальше без сессии.
func WithAuth(secret string, store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := SessionToken(r, secret); ok {
				if s, ok := store.Get(token); ok {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession перенаправляет на страницу входа запросы без сессии.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext возвращает сессию текущего запроса.
func GetSessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(session.Session)
	return s, ok
}
