package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
)

// TokenTTL is the JWT lifetime issued at login.
const TokenTTL = 24 * time.Hour

// LinkitClaims carries the authenticated identity inside the JWT.
type LinkitClaims struct {
	UID      int64  `json:"uid,string"`
	Username string `json:"usr"`
	Level    string `json:"lvl"`
	jwt.RegisteredClaims
}

// JwtConfig builds the echo-jwt middleware configuration for the /api
// group.
func JwtConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(LinkitClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"status": "error",
				"error": map[string]interface{}{
					"code":    "UNAUTHORIZED",
					"message": "Missing or invalid access token",
				},
			})
		},
	}
}

// SignToken issues a signed JWT for the user.
func SignToken(user *domain.User, secret string) (string, error) {
	now := time.Now()
	claims := LinkitClaims{
		UID:      user.ID,
		Username: user.Username,
		Level:    user.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ClaimsFrom extracts the parsed claims set by the JWT middleware,
// returning nil on unauthenticated requests.
func ClaimsFrom(c echo.Context) *LinkitClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(*LinkitClaims)
	if !ok {
		return nil
	}
	return claims
}
