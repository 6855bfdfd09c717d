package order

import (
	"strings"
	"testing"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestValidateRequiredFieldsOrder(t *testing.T) {
	req := &Request{}
	if err := ValidateRequiredFields(req); err == nil || !strings.Contains(err.Error(), "Personal information") {
		t.Errorf("want personal info error first, got %v", err)
	}

	req.PersonalInfo = &PersonalInfoInput{}
	if err := ValidateRequiredFields(req); err == nil || !strings.Contains(err.Error(), "Card design") {
		t.Errorf("want card design error, got %v", err)
	}

	req.CardDesign = &CardDesignInput{}
	if err := ValidateRequiredFields(req); err == nil || !strings.Contains(err.Error(), "Delivery information") {
		t.Errorf("want delivery info error, got %v", err)
	}

	req.DeliveryInfo = &DeliveryInfoInput{}
	if err := ValidateRequiredFields(req); err == nil || err.Error() != "Product ID is required" {
		t.Errorf("want product id error, got %v", err)
	}

	req.Product = "42"
	if err := ValidateRequiredFields(req); err != nil {
		t.Errorf("complete request should validate, got %v", err)
	}
}

func TestValidateCompanyLogo(t *testing.T) {
	withLogo := &CardDesignInput{IncludePrintedLogo: boolp(true)}

	if err := ValidateCompanyLogo(withLogo, false, nil); err == nil {
		t.Error("printed logo without any source should fail")
	}

	// any one of the three sources clears it
	design := &CardDesignInput{IncludePrintedLogo: boolp(true), CompanyLogo: strp("companyLogo/x.png")}
	if err := ValidateCompanyLogo(design, false, nil); err != nil {
		t.Errorf("value on design should satisfy: %v", err)
	}
	if err := ValidateCompanyLogo(withLogo, true, nil); err != nil {
		t.Errorf("fresh upload should satisfy: %v", err)
	}
	existing := &domain.Order{CardDesign: domain.CardDesign{CompanyLogo: "companyLogo/old.png"}}
	if err := ValidateCompanyLogo(withLogo, false, existing); err != nil {
		t.Errorf("stored logo should satisfy: %v", err)
	}

	// no-op when printed logo not requested
	if err := ValidateCompanyLogo(&CardDesignInput{IncludePrintedLogo: boolp(false)}, false, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCompanyLogo(nil, false, nil); err != nil {
		t.Errorf("nil design should be a no-op: %v", err)
	}
}

func TestValidateCountryCity(t *testing.T) {
	valid := map[string][]string{
		"JO": {"Amman", "Irbid", "Zarqa", "Aqaba", "Salt"},
		"UK": {"London", "Manchester", "Birmingham", "Liverpool", "Bristol"},
	}
	for country, cities := range valid {
		for _, city := range cities {
			if err := ValidateCountryCity(country, city); err != nil {
				t.Errorf("(%s, %s) should be valid: %v", country, city, err)
			}
		}
	}

	if err := ValidateCountryCity("JO", "London"); err == nil {
		t.Error("London is not a JO city")
	} else if !strings.Contains(err.Error(), "Amman") {
		t.Errorf("message should list JO cities: %v", err)
	}

	if err := ValidateCountryCity("FR", "Paris"); err == nil {
		t.Error("FR is not deliverable")
	} else if !strings.Contains(err.Error(), "JO") || !strings.Contains(err.Error(), "UK") {
		t.Errorf("message should list known countries: %v", err)
	}

	// absent values are a no-op
	if err := ValidateCountryCity("", "Amman"); err != nil {
		t.Errorf("missing country should pass: %v", err)
	}
	if err := ValidateCountryCity("JO", ""); err != nil {
		t.Errorf("missing city should pass: %v", err)
	}
}

func TestValidateDeliveryInfoFallback(t *testing.T) {
	existing := &domain.Order{DeliveryInfo: domain.DeliveryInfo{Country: "JO", City: "Amman"}}

	// partial update: only city supplied, country from stored order
	if err := ValidateDeliveryInfo(&DeliveryInfoInput{City: strp("Irbid")}, existing); err != nil {
		t.Errorf("city Irbid with stored country JO should pass: %v", err)
	}

	// incoming values take precedence
	if err := ValidateDeliveryInfo(&DeliveryInfoInput{Country: strp("UK"), City: strp("Amman")}, existing); err == nil {
		t.Error("Amman is not a UK city")
	}

	if err := ValidateDeliveryInfo(nil, existing); err != nil {
		t.Errorf("nil input with valid stored destination should pass: %v", err)
	}
	if err := ValidateDeliveryInfo(nil, nil); err != nil {
		t.Errorf("nothing to validate should pass: %v", err)
	}
}
