package order

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahmedkhaledali1/linkit-backend/config"
	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
	"github.com/ahmedkhaledali1/linkit-backend/internal/uploads"
	"github.com/ahmedkhaledali1/linkit-backend/pkg/common"
)

// DefaultDeliveryDays is the per-country shipping lead time used when
// the configuration does not override it.
var DefaultDeliveryDays = map[string]int{"JO": 3, "UK": 7}

const fallbackDeliveryDays = 7

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID    int64
	Level string
}

func (a Actor) Elevated() bool {
	return a.Level == domain.UserLevelSuper || a.Level == domain.UserLevelAdmin
}

// ListOptions narrows and pages order listings. SortField is checked
// against a column whitelist by the service.
type ListOptions struct {
	Status     string
	CustomerID int64
	SortField  string
	SortOrder  string
	Page       int
	PageSize   int
}

// Service runs the order workflow against the database and the upload
// store. Each call is a single request-scoped unit of work; persistence
// and file writes are awaited sequentially, never fanned out.
type Service struct {
	db            *gorm.DB
	files         *uploads.Store
	logoSurcharge float64
	deliveryDays  map[string]int
}

func NewService(db *gorm.DB, files *uploads.Store, cfg config.OrdersConfig) *Service {
	surcharge := cfg.LogoSurcharge
	if surcharge <= 0 {
		surcharge = DefaultLogoSurcharge
	}
	days := cfg.DeliveryDays
	if len(days) == 0 {
		days = DefaultDeliveryDays
	}
	return &Service{db: db, files: files, logoSurcharge: surcharge, deliveryDays: days}
}

// Create builds, validates and persists a new order, returning the
// expanded record and the customer-facing creation message.
//
// The companyLogo upload (when present) is written to durable storage
// before the database insert. A failed insert does not roll the file
// back; the orphan is logged and swept by the reconcile job.
func (s *Service) Create(ctx context.Context, req *Request, logo *multipart.FileHeader, actor Actor) (*domain.Order, string, error) {
	if err := ValidateRequiredFields(req); err != nil {
		return nil, "", err
	}

	productID, err := cast.ToInt64E(strings.TrimSpace(req.Product))
	if err != nil || productID == 0 {
		return nil, "", Validationf("Invalid product ID")
	}
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NotFoundf("Product not found")
		}
		return nil, "", errors.Wrap(err, "query product")
	}

	logoPath, err := s.resolveLogoUpload(logo)
	if err != nil {
		return nil, "", err
	}

	includeLogo := req.CardDesign.PrintedLogo()
	total, surcharge := calculateOrderTotal(product.Price, includeLogo, s.logoSurcharge)

	if err := ValidateCompanyLogo(req.CardDesign, logoPath != "", nil); err != nil {
		return nil, "", err
	}
	if err := ValidateDeliveryInfo(req.DeliveryInfo, nil); err != nil {
		return nil, "", err
	}

	now := time.Now()
	country := strVal(req.DeliveryInfo.Country)
	eta := now.AddDate(0, 0, s.leadDays(country))

	o := domain.Order{
		ID:         common.UUIDint64(),
		CustomerID: actor.ID,
		ProductID:  product.ID,
		PersonalInfo: domain.PersonalInfo{
			Name:         strVal(req.PersonalInfo.Name),
			Email:        strVal(req.PersonalInfo.Email),
			Phone:        strVal(req.PersonalInfo.Phone),
			PhoneNumbers: req.PersonalInfo.PhoneNumbers,
		},
		CardDesign: domain.CardDesign{
			Color:              CanonicalColor(strVal(req.CardDesign.Color)),
			IncludePrintedLogo: includeLogo,
			CompanyLogo:        firstNonEmpty(logoPath, logoRef(req.CardDesign.CompanyLogo)),
		},
		DeliveryInfo: domain.DeliveryInfo{
			Country:        country,
			City:           strVal(req.DeliveryInfo.City),
			Address:        strVal(req.DeliveryInfo.Address),
			UseSameContact: boolVal(req.DeliveryInfo.UseSameContact),
		},
		ProductPrice:      product.Price,
		LogoSurcharge:     surcharge,
		Total:             total,
		Status:            StatusPending,
		Notes:             strVal(req.Notes),
		EstimatedDelivery: eta,
		CreatedByID:       actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		if logoPath != "" {
			zap.L().Warn("order insert failed after logo upload, file orphaned",
				zap.String("path", logoPath), zap.Error(err))
		}
		return nil, "", errors.Wrap(err, "create order")
	}

	expanded, err := s.expand(ctx, o.ID)
	if err != nil {
		return nil, "", err
	}
	msg := fmt.Sprintf("Order created successfully! Estimated delivery: %s", eta.Format("Jan 2, 2006"))
	return expanded, msg, nil
}

// Update applies a partial order update. Only explicitly supplied
// fields are written; full-document validation is intentionally not
// re-run so sparse field sets stay valid. The stored order backs the
// logo and delivery checks for fields the client did not resend.
func (s *Service) Update(ctx context.Context, id int64, req *Request, logo *multipart.FileHeader, actor Actor) (*domain.Order, error) {
	var existing domain.Order
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Order not found")
		}
		return nil, errors.Wrap(err, "query order")
	}
	if !actor.Elevated() && existing.CustomerID != actor.ID {
		return nil, Forbiddenf("You do not have permission to modify this order")
	}

	logoPath, err := s.resolveLogoUpload(logo)
	if err != nil {
		return nil, err
	}

	if err := ValidateCompanyLogo(req.CardDesign, logoPath != "", &existing); err != nil {
		return nil, err
	}
	if err := ValidateDeliveryInfo(req.DeliveryInfo, &existing); err != nil {
		return nil, err
	}

	var cols []string
	repriced := false

	if req.PersonalInfo != nil {
		if req.PersonalInfo.Name != nil {
			existing.PersonalInfo.Name = *req.PersonalInfo.Name
			cols = append(cols, "personal_name")
		}
		if req.PersonalInfo.Email != nil {
			existing.PersonalInfo.Email = *req.PersonalInfo.Email
			cols = append(cols, "personal_email")
		}
		if req.PersonalInfo.Phone != nil {
			existing.PersonalInfo.Phone = *req.PersonalInfo.Phone
			cols = append(cols, "personal_phone")
		}
		if req.PersonalInfo.PhoneNumbers != nil {
			existing.PersonalInfo.PhoneNumbers = req.PersonalInfo.PhoneNumbers
			cols = append(cols, "personal_phone_numbers")
		}
	}

	if req.CardDesign != nil {
		if req.CardDesign.Color != nil {
			existing.CardDesign.Color = CanonicalColor(*req.CardDesign.Color)
			cols = append(cols, "design_color")
		}
		if req.CardDesign.IncludePrintedLogo != nil {
			existing.CardDesign.IncludePrintedLogo = *req.CardDesign.IncludePrintedLogo
			cols = append(cols, "design_include_printed_logo")
			repriced = true
		}
		if req.CardDesign.CompanyLogo != nil {
			existing.CardDesign.CompanyLogo = logoRef(req.CardDesign.CompanyLogo)
			cols = append(cols, "design_company_logo")
		}
	}
	if logoPath != "" {
		existing.CardDesign.CompanyLogo = logoPath
		cols = appendUnique(cols, "design_company_logo")
	}

	if req.DeliveryInfo != nil {
		if req.DeliveryInfo.Country != nil {
			existing.DeliveryInfo.Country = *req.DeliveryInfo.Country
			cols = append(cols, "delivery_country")
		}
		if req.DeliveryInfo.City != nil {
			existing.DeliveryInfo.City = *req.DeliveryInfo.City
			cols = append(cols, "delivery_city")
		}
		if req.DeliveryInfo.Address != nil {
			existing.DeliveryInfo.Address = *req.DeliveryInfo.Address
			cols = append(cols, "delivery_address")
		}
		if req.DeliveryInfo.UseSameContact != nil {
			existing.DeliveryInfo.UseSameContact = *req.DeliveryInfo.UseSameContact
			cols = append(cols, "delivery_use_same_contact")
		}
	}

	if strings.TrimSpace(req.Product) != "" {
		productID, err := cast.ToInt64E(strings.TrimSpace(req.Product))
		if err != nil || productID == 0 {
			return nil, Validationf("Invalid product ID")
		}
		var product domain.Product
		if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundf("Product not found")
			}
			return nil, errors.Wrap(err, "query product")
		}
		existing.ProductID = product.ID
		existing.ProductPrice = product.Price
		cols = append(cols, "product_id", "product_price")
		repriced = true
	}

	if req.Notes != nil {
		existing.Notes = *req.Notes
		cols = append(cols, "notes")
	}

	if len(cols) == 0 {
		return nil, Validationf("No valid fields provided to update")
	}

	// Keep total == productPrice + logoSurcharge when either input moved.
	if repriced {
		existing.Total, existing.LogoSurcharge = calculateOrderTotal(
			existing.ProductPrice, existing.CardDesign.IncludePrintedLogo, s.logoSurcharge)
		cols = append(cols, "logo_surcharge", "total")
	}

	existing.UpdatedAt = time.Now()
	cols = append(cols, "updated_at")

	if err := s.db.WithContext(ctx).Model(&existing).Select(cols).Updates(existing).Error; err != nil {
		if logoPath != "" {
			zap.L().Warn("order update failed after logo upload, file orphaned",
				zap.String("path", logoPath), zap.Error(err))
		}
		return nil, errors.Wrap(err, "update order")
	}

	return s.expand(ctx, id)
}

// UpdateStatus moves an order along the status table and returns the
// status-specific message. Customers may only touch their own orders.
// Delivery validation intentionally does not run on status-only
// updates.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status, notes string, who Actor) (*domain.Order, string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, "", Validationf("Status is required")
	}
	if !IsValidStatus(status) {
		return nil, "", Validationf("Invalid status. Valid statuses are: %s", ValidStatusList())
	}

	var existing domain.Order
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NotFoundf("Order not found")
		}
		return nil, "", errors.Wrap(err, "query order")
	}

	if !who.Elevated() && existing.CustomerID != who.ID {
		return nil, "", Forbiddenf("You do not have permission to update this order")
	}

	if !CanTransition(existing.Status, status) {
		return nil, "", Validationf("Cannot change order status from %s to %s", existing.Status, status)
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if strings.TrimSpace(notes) != "" {
		updates["notes"] = notes
	}
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, "", errors.Wrap(err, "update order status")
	}

	expanded, err := s.expand(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return expanded, StatusMessage(status), nil
}

// Get fetches a single order with references expanded. Customers only
// see their own orders.
func (s *Service) Get(ctx context.Context, id int64, actor Actor) (*domain.Order, error) {
	o, err := s.expand(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() && o.CustomerID != actor.ID {
		return nil, Forbiddenf("You do not have permission to view this order")
	}
	return o, nil
}

// List returns a filtered, sorted, paginated order page with
// references expanded.
func (s *Service) List(ctx context.Context, opt ListOptions) ([]domain.Order, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Order{})
	if opt.Status != "" {
		db = db.Where("status = ?", opt.Status)
	}
	if opt.CustomerID != 0 {
		db = db.Where("customer_id = ?", opt.CustomerID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}

	page := opt.Page
	if page < 1 {
		page = 1
	}
	pageSize := opt.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	var rows []domain.Order
	err := db.Preload("Customer").Preload("Product").Preload("CreatedBy").
		Order(orderSortClause(opt.SortField, opt.SortOrder)).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query orders")
	}
	return rows, total, nil
}

// ListForCustomer is the role-gated customer listing: the actor must be
// elevated or match the requested customer exactly.
func (s *Service) ListForCustomer(ctx context.Context, customerID int64, actor Actor, opt ListOptions) ([]domain.Order, int64, error) {
	if !actor.Elevated() && actor.ID != customerID {
		return nil, 0, Forbiddenf("You do not have permission to view these orders")
	}
	opt.CustomerID = customerID
	return s.List(ctx, opt)
}

// Delete removes an order permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return NotFoundf("Order not found")
	}
	return nil
}

// ReconcileOrphanLogos logs uploaded company logos older than the
// cutoff that no order references. Reporting only; nothing is deleted.
func (s *Service) ReconcileOrphanLogos(ctx context.Context, olderThan time.Duration) ([]string, error) {
	orphans, err := s.files.ScanOrphans(uploads.FieldCompanyLogo, olderThan, func(rel string) bool {
		var n int64
		if err := s.db.WithContext(ctx).Model(&domain.Order{}).
			Where("design_company_logo = ?", rel).Count(&n).Error; err != nil {
			// treat as referenced on query failure, never report live files
			return true
		}
		return n > 0
	})
	if err != nil {
		return nil, err
	}
	for _, rel := range orphans {
		zap.L().Warn("orphaned company logo upload", zap.String("path", rel))
	}
	return orphans, nil
}

// logoRef normalizes a client-echoed logo reference (the served
// "/public/..." URL from an earlier upload) back to the stored
// public-relative form.
func logoRef(v *string) string {
	s := strVal(v)
	if s == "" {
		return ""
	}
	return uploads.RelativeToPublic(s)
}

func (s *Service) resolveLogoUpload(logo *multipart.FileHeader) (string, error) {
	if logo == nil {
		return "", nil
	}
	rel, err := s.files.Save(logo, uploads.FieldCompanyLogo)
	if err != nil {
		return "", errors.Wrap(err, "store company logo")
	}
	return rel, nil
}

func (s *Service) leadDays(country string) int {
	if d, ok := s.deliveryDays[country]; ok && d > 0 {
		return d
	}
	return fallbackDeliveryDays
}

func (s *Service) expand(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").Preload("Product").Preload("CreatedBy").
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Order not found")
		}
		return nil, errors.Wrap(err, "query order")
	}
	return &o, nil
}

// orderSortClause whitelists sortable columns to keep user input out of
// the ORDER BY clause.
func orderSortClause(field, order string) string {
	allowed := map[string]string{
		"id":         "id",
		"status":     "status",
		"total":      "total",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	col, ok := allowed[field]
	if !ok {
		col = "id"
	}
	if !strings.EqualFold(order, "ASC") {
		order = "DESC"
	} else {
		order = "ASC"
	}
	return col + " " + order
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func appendUnique(cols []string, col string) []string {
	for _, c := range cols {
		if c == col {
			return cols
		}
	}
	return append(cols, col)
}
