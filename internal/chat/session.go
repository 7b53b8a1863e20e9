package chat

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the per-conversation state handed to every dispatcher call.
// Role is the only thing it holds; there is deliberately no global role.
type Session struct {
	Role Role
}

func NewSession() *Session {
	return &Session{Role: RoleUser}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token carrying the session role so the client can
// present it on subsequent requests.
func IssueToken(secret string, sess *Session) (string, error) {
	claims := &sessionClaims{
		Role: string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SessionFromToken rebuilds a session from a signed token. A missing,
// invalid or expired token gives a plain user session rather than an
// error: the chat stays usable, just without admin rights.
func SessionFromToken(secret, tokenStr string) *Session {
	if tokenStr == "" {
		return NewSession()
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return NewSession()
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || Role(claims.Role) != RoleAdmin {
		return NewSession()
	}
	return &Session{Role: RoleAdmin}
}
