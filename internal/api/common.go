package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahmedkhaledali1/linkit-backend/config"
	"github.com/ahmedkhaledali1/linkit-backend/internal/order"
	"github.com/ahmedkhaledali1/linkit-backend/internal/uploads"
	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
)

// package-level collaborators, wired once by Register.
var (
	appConfig *config.AppConfig
	orderSvc  *order.Service
	fileStore *uploads.Store
)

// Register wires the API handlers and mounts every route group.
func Register(cfg *config.AppConfig, svc *order.Service, files *uploads.Store) {
	appConfig = cfg
	orderSvc = svc
	fileStore = files

	registerAuthRoutes()
	registerProductRoutes()
	registerOrderRoutes()
	registerFileRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   data,
	})
}

func okMessage(c echo.Context, code int, data interface{}, message string) error {
	return c.JSON(code, echo.Map{
		"status":  "success",
		"data":    data,
		"message": message,
	})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data": echo.Map{
			"items":     items,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, echo.Map{
		"status": "error",
		"error":  body,
	})
}

// failErr maps workflow errors onto the client envelope. Unclassified
// errors are persistence or filesystem failures and surface as 500s.
func failErr(c echo.Context, err error) error {
	if kind, ok := order.KindOf(err); ok {
		switch kind {
		case order.KindNotFound:
			return fail(c, http.StatusNotFound, string(kind), err.Error(), nil)
		case order.KindForbidden:
			return fail(c, http.StatusForbidden, string(kind), err.Error(), nil)
		default:
			return fail(c, http.StatusBadRequest, string(kind), err.Error(), nil)
		}
	}
	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Internal server error", nil)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("limit")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

// actor resolves the authenticated identity from the JWT claims.
func actor(c echo.Context) order.Actor {
	claims := webserver.ClaimsFrom(c)
	if claims == nil {
		return order.Actor{}
	}
	return order.Actor{ID: claims.UID, Level: claims.Level}
}
