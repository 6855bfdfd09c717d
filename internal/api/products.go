package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
	"github.com/ahmedkhaledali1/linkit-backend/internal/order"
	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
	"github.com/ahmedkhaledali1/linkit-backend/pkg/common"
)

type productPayload struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// validateProductPayload normalizes and checks a payload in place,
// returning the first problem found.
func validateProductPayload(payload *productPayload) string {
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return "Title is required"
	}
	if payload.Price < 0 {
		return "Price must be non-negative"
	}
	for i, color := range payload.Colors {
		canon := order.CanonicalColor(color)
		if !validColorToken(canon) {
			return "Invalid color: " + color
		}
		payload.Colors[i] = canon
	}
	return ""
}

// validColorToken accepts a color name or a 3/6 digit hex value.
func validColorToken(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if v[0] == '#' {
		hex := v[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, r := range strings.ToLower(hex) {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				return false
			}
		}
		return true
	}
	for _, r := range v {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	sortOrder := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}
	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"title":      "title",
		"price":      "price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, ok := allowed[sortField]
	if !ok {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + sortOrder).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, echo.Map{"product": p})
}

func createProduct(c echo.Context) error {
	if !actor(c).Elevated() {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	images := payload.Images
	if len(images) == 0 {
		images = []string{domain.DefaultProductImage}
	}

	now := time.Now()
	p := domain.Product{
		ID:          common.UUIDint64(),
		Title:       payload.Title,
		Description: strings.TrimSpace(payload.Description),
		Price:       payload.Price,
		Colors:      payload.Colors,
		Images:      images,
		OwnerID:     actor(c).ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return okMessage(c, http.StatusCreated, echo.Map{"product": p}, "Product created successfully")
}

func updateProduct(c echo.Context) error {
	if !actor(c).Elevated() {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Title = payload.Title
	p.Description = strings.TrimSpace(payload.Description)
	p.Price = payload.Price
	p.Colors = payload.Colors
	if len(payload.Images) > 0 {
		p.Images = payload.Images
	} else if len(p.Images) == 0 {
		p.Images = []string{domain.DefaultProductImage}
	}
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, echo.Map{"product": p})
}

func deleteProduct(c echo.Context) error {
	if !actor(c).Elevated() {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return okMessage(c, http.StatusOK, echo.Map{"id": id}, "Product deleted")
}
