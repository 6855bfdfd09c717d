package order

// DefaultLogoSurcharge is the flat fee charged when a printed company
// logo is requested on the card.
const DefaultLogoSurcharge = 5.0

// CalculateOrderTotal derives the order total and the applied logo
// surcharge from the product price and the design choice. Pure.
func CalculateOrderTotal(productPrice float64, includePrintedLogo bool) (total, surcharge float64) {
	return calculateOrderTotal(productPrice, includePrintedLogo, DefaultLogoSurcharge)
}

func calculateOrderTotal(productPrice float64, includePrintedLogo bool, logoSurcharge float64) (float64, float64) {
	var surcharge float64
	if includePrintedLogo {
		surcharge = logoSurcharge
	}
	return productPrice + surcharge, surcharge
}
