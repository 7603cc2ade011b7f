package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

// IdentityContextKey is the key for the caller's identity in the context.
const IdentityContextKey = contextKey("identity")

const tokenRejectedKey = contextKey("token-rejected")

// AccessTokenCookie is the cookie browsers carry the access token in.
const AccessTokenCookie = "accessToken"

// Claims are the access token claims issued at login.
type Claims struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the verified caller.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Authenticator verifies access tokens signed with an HMAC secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Middleware attaches the caller's identity when a valid token is present.
// Requests without one, or with an expired or malformed one, pass through
// anonymously; handlers that need a caller check IdentityFrom and
// TokenRejected.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.Verify(token)
		if err != nil {
			logrus.WithError(err).WithField("path", r.URL.Path).Debug("Ignoring invalid access token")
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenRejectedKey, true)))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Verify parses and validates a token string.
func (a *Authenticator) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	raw := claims.UserID
	if raw == "" {
		raw = claims.Subject
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: id, Username: claims.Username}, nil
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// WithIdentity returns a context carrying identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFrom returns the caller's identity, if one was verified.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(Identity)
	return identity, ok
}

// TokenRejected reports whether the request carried a token that failed
// verification.
func TokenRejected(ctx context.Context) bool {
	rejected, _ := ctx.Value(tokenRejectedKey).(bool)
	return rejected
}
