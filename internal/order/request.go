package order

// Request is the typed order payload shared by create and partial
// update. Pointer fields distinguish "not supplied" from zero values so
// updates only touch what the client actually sent.
type Request struct {
	PersonalInfo *PersonalInfoInput `json:"personalInfo" mapstructure:"personalInfo"`
	CardDesign   *CardDesignInput   `json:"cardDesign" mapstructure:"cardDesign"`
	DeliveryInfo *DeliveryInfoInput `json:"deliveryInfo" mapstructure:"deliveryInfo"`
	Product      string             `json:"product" mapstructure:"product"`
	Notes        *string            `json:"notes" mapstructure:"notes"`
}

type PersonalInfoInput struct {
	Name         *string  `json:"name" mapstructure:"name"`
	Email        *string  `json:"email" mapstructure:"email"`
	Phone        *string  `json:"phone" mapstructure:"phone"`
	PhoneNumbers []string `json:"phoneNumbers" mapstructure:"phoneNumbers"`
}

type CardDesignInput struct {
	Color              *string `json:"color" mapstructure:"color"`
	IncludePrintedLogo *bool   `json:"includePrintedLogo" mapstructure:"includePrintedLogo"`
	CompanyLogo        *string `json:"companyLogo" mapstructure:"companyLogo"`
}

type DeliveryInfoInput struct {
	Country        *string `json:"country" mapstructure:"country"`
	City           *string `json:"city" mapstructure:"city"`
	Address        *string `json:"address" mapstructure:"address"`
	UseSameContact *bool   `json:"useSameContact" mapstructure:"useSameContact"`
}

// PrintedLogo reports whether the incoming design asks for a printed
// company logo. Nil-safe.
func (d *CardDesignInput) PrintedLogo() bool {
	return d != nil && d.IncludePrintedLogo != nil && *d.IncludePrintedLogo
}

// Normalize canonicalizes color tokens on the request in place. JSON
// bodies bypass the form normalizer, so handlers call this on every
// bound request.
func (r *Request) Normalize() {
	if r.CardDesign != nil && r.CardDesign.Color != nil {
		canon := CanonicalColor(*r.CardDesign.Color)
		r.CardDesign.Color = &canon
	}
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolVal(p *bool) bool {
	return p != nil && *p
}
