package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedkhaledali1/linkit-backend/internal/order"
)

func failErrBody(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, failErr(c, err))
	return rec.Code, decodeBody(t, rec)
}

func TestFailErrKinds(t *testing.T) {
	code, body := failErrBody(t, order.NotFoundf("Order not found"))
	assert.Equal(t, http.StatusNotFound, code)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "Order not found", errBody["message"])

	code, _ = failErrBody(t, order.Forbiddenf("no"))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = failErrBody(t, order.Validationf("bad"))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFailErrHidesInternalDetail(t *testing.T) {
	dbErr := errors.Wrap(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"), "query order")

	code, body := failErrBody(t, dbErr)
	assert.Equal(t, http.StatusInternalServerError, code)

	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "SERVER_ERROR", errBody["code"])
	assert.Equal(t, "Internal server error", errBody["message"])
	assert.NotContains(t, errBody, "detail")
}
