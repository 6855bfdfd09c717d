package webserver

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
)

const testSecret = "jwt-test-secret"

// newJwtEcho mounts a claims-echoing handler behind the real JWT
// middleware so token signing and parsing go through the same path as
// the /api group.
func newJwtEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(echojwt.WithConfig(JwtConfig(testSecret)))
	g.GET("/whoami", func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil {
			return c.String(http.StatusInternalServerError, "no claims")
		}
		return c.String(http.StatusOK, strconv.FormatInt(claims.UID, 10)+":"+claims.Level)
	})
	return e
}

func TestSignTokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: 42, Username: "jwtuser", Level: domain.UserLevelAdmin}
	token, err := SignToken(user, testSecret)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	e := newJwtEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "42:admin" {
		t.Fatalf("claims = %q, want %q", got, "42:admin")
	}
}

func TestJwtRejectsBadToken(t *testing.T) {
	e := newJwtEcho()

	for _, token := range []string{"", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status = %d, want 401", token, rec.Code)
		}
	}
}

func TestJwtRejectsWrongKey(t *testing.T) {
	user := &domain.User{ID: 7, Username: "other", Level: domain.UserLevelCustomer}
	token, err := SignToken(user, "some-other-secret")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	e := newJwtEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
