package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-portal/internal/domain/entity"
	"hospital-portal/pkg/jwt"
	"hospital-portal/pkg/response"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenIDKey contextKey = "token_id"
)

// accessTokenParam carries the token for clients that cannot set headers,
// such as a browser EventSource.
const accessTokenParam = "access_token"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		session := entity.Session{
			Profile: claims.Profile,
			Role:    entity.ParseRole(claims.Role),
			Name:    claims.Name,
		}
		if session.Profile == "" || !session.Role.IsValid() {
			response.Unauthorized(w, "Invalid session")
			return
		}

		ctx := WithSession(r.Context(), session)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := r.URL.Query().Get(accessTokenParam); token != "" {
		return token, true
	}
	return "", false
}

// WithSession stores the session on ctx.
func WithSession(ctx context.Context, session entity.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSessionFromContext extracts the session from context
func GetSessionFromContext(ctx context.Context) (entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(entity.Session)
	return session, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
