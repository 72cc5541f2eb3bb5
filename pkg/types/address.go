package types

// ShippingAddress is the checkout address snapshot stored on each order as
// JSONB. The country defaults to Pakistan for the storefront's home market.
type ShippingAddress struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}
