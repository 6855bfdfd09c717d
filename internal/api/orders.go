package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ahmedkhaledali1/linkit-backend/internal/order"
	"github.com/ahmedkhaledali1/linkit-backend/internal/uploads"
	"github.com/ahmedkhaledali1/linkit-backend/internal/webserver"
)

func registerOrderRoutes() {
	webserver.PubGET("/delivery-options", deliveryOptions)

	// static segments must be mounted before the :id routes
	webserver.ApiGET("/orders/my-orders", listMyOrders)
	webserver.ApiGET("/orders/customer/:customerId", listCustomerOrders)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPATCH("/orders/:id", updateOrder)
	webserver.ApiPATCH("/orders/:id/status", updateOrderStatus)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

// bindOrderRequest decodes the order payload from either a JSON body or
// a (multipart) form, and pulls the optional companyLogo file part.
// Unknown fields are rejected in both encodings.
func bindOrderRequest(c echo.Context) (*order.Request, *multipart.FileHeader, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		dec := json.NewDecoder(c.Request().Body)
		dec.DisallowUnknownFields()
		var req order.Request
		if err := dec.Decode(&req); err != nil {
			return nil, nil, order.Validationf("Invalid order payload: %v", err)
		}
		req.Normalize()
		return &req, nil, nil
	}

	var values url.Values
	var logo *multipart.FileHeader
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, order.Validationf("Invalid multipart form: %v", err)
		}
		values = url.Values(form.Value)
		if fhs := form.File[uploads.FieldCompanyLogo]; len(fhs) > 0 {
			logo = fhs[0]
		}
	} else {
		if err := c.Request().ParseForm(); err != nil {
			return nil, nil, order.Validationf("Invalid form payload: %v", err)
		}
		values = c.Request().PostForm
	}

	req, err := order.ParseForm(values)
	if err != nil {
		return nil, nil, err
	}
	return req, logo, nil
}

func createOrder(c echo.Context) error {
	req, logo, err := bindOrderRequest(c)
	if err != nil {
		return failErr(c, err)
	}
	o, msg, err := orderSvc.Create(c.Request().Context(), req, logo, actor(c))
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, http.StatusCreated, echo.Map{"order": o}, msg)
}

func updateOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	req, logo, err := bindOrderRequest(c)
	if err != nil {
		return failErr(c, err)
	}
	o, err := orderSvc.Update(c.Request().Context(), id, req, logo, actor(c))
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, http.StatusOK, echo.Map{"order": o}, "Order updated successfully")
}

type statusPayload struct {
	Status string `json:"status" form:"status"`
	Notes  string `json:"notes" form:"notes"`
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status payload", err.Error())
	}
	o, msg, err := orderSvc.UpdateStatus(c.Request().Context(), id, payload.Status, payload.Notes, actor(c))
	if err != nil {
		return failErr(c, err)
	}
	return okMessage(c, http.StatusOK, echo.Map{"order": o}, msg)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	o, err := orderSvc.Get(c.Request().Context(), id, actor(c))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, echo.Map{"order": o})
}

func listOrders(c echo.Context) error {
	who := actor(c)
	if !who.Elevated() {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
	}
	opt := listOptionsFromQuery(c)
	if v := strings.TrimSpace(c.QueryParam("customer")); v != "" {
		cid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid customer filter", nil)
		}
		opt.CustomerID = cid
	}
	rows, total, err := orderSvc.List(c.Request().Context(), opt)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, opt.Page, opt.PageSize)
}

func listMyOrders(c echo.Context) error {
	who := actor(c)
	opt := listOptionsFromQuery(c)
	rows, total, err := orderSvc.ListForCustomer(c.Request().Context(), who.ID, who, opt)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, opt.Page, opt.PageSize)
}

func listCustomerOrders(c echo.Context) error {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	opt := listOptionsFromQuery(c)
	rows, total, err := orderSvc.ListForCustomer(c.Request().Context(), customerID, actor(c), opt)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, opt.Page, opt.PageSize)
}

func deleteOrder(c echo.Context) error {
	if !actor(c).Elevated() {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	if err := orderSvc.Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return okMessage(c, http.StatusOK, echo.Map{"id": id}, "Order deleted")
}

// deliveryOptions exposes the country/city whitelist to the storefront.
func deliveryOptions(c echo.Context) error {
	return ok(c, echo.Map{"destinations": order.DeliveryOptions()})
}

func listOptionsFromQuery(c echo.Context) order.ListOptions {
	page, pageSize := parsePagination(c)
	return order.ListOptions{
		Status:    strings.TrimSpace(c.QueryParam("status")),
		SortField: strings.TrimSpace(c.QueryParam("sort")),
		SortOrder: strings.TrimSpace(c.QueryParam("order")),
		Page:      page,
		PageSize:  pageSize,
	}
}
