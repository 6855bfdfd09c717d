package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
	"github.com/ahmedkhaledali1/linkit-backend/pkg/common"
)

type registerPayload struct {
	Realname string `json:"realname"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", login)
	webserver.ApiGET("/users/me", currentUser)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration payload", err.Error())
	}

	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))

	var count int64
	if err := GetDB(c).Model(&domain.User{}).Where("username = ?", payload.Username).Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	if count > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username is already taken", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to hash password", nil)
	}

	now := time.Now()
	user := domain.User{
		ID:        common.UUIDint64(),
		Realname:  strings.TrimSpace(payload.Realname),
		Mobile:    strings.TrimSpace(payload.Mobile),
		Email:     strings.TrimSpace(payload.Email),
		Username:  payload.Username,
		Password:  string(hashed),
		Level:     domain.UserLevelCustomer,
		Status:    common.ENABLED,
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}

	token, err := webserver.SignToken(&user, appConfig.Web.Secret)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to issue token", nil)
	}
	return okMessage(c, http.StatusCreated, echo.Map{"user": user, "token": token}, "Account created successfully")
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", nil)
	}

	username := strings.ToLower(strings.TrimSpace(payload.Username))

	var user domain.User
	err := GetDB(c).Where("username = ?", username).First(&user).Error
	if err != nil {
		// single message for unknown user and bad password
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}
	if user.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account is disabled", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}

	GetDB(c).Model(&domain.User{}).Where("id = ?", user.ID).Update("last_login", time.Now())

	token, err := webserver.SignToken(&user, appConfig.Web.Secret)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to issue token", nil)
	}
	return okMessage(c, http.StatusOK, echo.Map{"user": user, "token": token}, "Logged in successfully")
}

func currentUser(c echo.Context) error {
	who := actor(c)
	var user domain.User
	if err := GetDB(c).First(&user, who.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return ok(c, echo.Map{"user": user})
}
