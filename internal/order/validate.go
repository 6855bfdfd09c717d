package order

import (
	"sort"
	"strings"

	"github.com/ahmedkhaledali1/linkit-backend/internal/domain"
)

// deliveryCities is the static allowed-city-per-country table. Keys are
// ISO-style country codes, values the deliverable cities.
var deliveryCities = map[string][]string{
	"JO": {"Amman", "Irbid", "Zarqa", "Aqaba", "Salt"},
	"UK": {"London", "Manchester", "Birmingham", "Liverpool", "Bristol"},
}

// ValidateRequiredFields checks the create payload for all mandatory
// groups, in a fixed order, returning the first missing one.
func ValidateRequiredFields(req *Request) error {
	if req.PersonalInfo == nil {
		return Validationf("Personal information is required")
	}
	if req.CardDesign == nil {
		return Validationf("Card design is required")
	}
	if req.DeliveryInfo == nil {
		return Validationf("Delivery information is required")
	}
	if strings.TrimSpace(req.Product) == "" {
		return Validationf("Product ID is required")
	}
	return nil
}

// ValidateCompanyLogo enforces that a company logo exists whenever a
// printed logo is requested. The logo may come from the incoming design
// payload, a fresh upload, or (on update) the stored order.
func ValidateCompanyLogo(design *CardDesignInput, hasUpload bool, existing *domain.Order) error {
	if !design.PrintedLogo() {
		return nil
	}
	if strVal(design.CompanyLogo) != "" {
		return nil
	}
	if hasUpload {
		return nil
	}
	if existing != nil && existing.CardDesign.CompanyLogo != "" {
		return nil
	}
	return Validationf("Company logo is required when printed logo is selected")
}

// ValidateCountryCity checks a destination against the delivery
// whitelist. Either value absent is a no-op; unknown countries and
// unlisted cities fail with the respective allowed set in the message.
func ValidateCountryCity(country, city string) error {
	if country == "" || city == "" {
		return nil
	}
	cities, ok := deliveryCities[country]
	if !ok {
		countries := make([]string, 0, len(deliveryCities))
		for c := range deliveryCities {
			countries = append(countries, c)
		}
		sort.Strings(countries)
		return Validationf("We currently only deliver to: %s", strings.Join(countries, ", "))
	}
	for _, c := range cities {
		if strings.EqualFold(c, city) {
			return nil
		}
	}
	return Validationf("Invalid city for %s. Valid cities are: %s", country, strings.Join(cities, ", "))
}

// ValidateDeliveryInfo resolves country and city preferring the
// incoming values and falling back to the stored order, supporting
// partial updates, then delegates to the whitelist check.
func ValidateDeliveryInfo(info *DeliveryInfoInput, existing *domain.Order) error {
	var country, city string
	if info != nil {
		country = strVal(info.Country)
		city = strVal(info.City)
	}
	if existing != nil {
		if country == "" {
			country = existing.DeliveryInfo.Country
		}
		if city == "" {
			city = existing.DeliveryInfo.City
		}
	}
	return ValidateCountryCity(country, city)
}

// DeliveryOptions returns a copy of the allowed-city-per-country table,
// for clients that render the destination picker.
func DeliveryOptions() map[string][]string {
	out := make(map[string][]string, len(deliveryCities))
	for country, cities := range deliveryCities {
		out[country] = append([]string(nil), cities...)
	}
	return out
}
