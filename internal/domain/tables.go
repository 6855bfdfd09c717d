package domain

var Tables = []interface{}{
	// System
	&User{},
	// CRM
	&Product{},
	&Order{},
}
