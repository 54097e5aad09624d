package models

// PurchasedItem represents a product bought by a client
type PurchasedItem struct {
	ID         string   `json:"id"`
	ClientID   string   `json:"client_id"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	UnitPrice  float64  `json:"unit_price"`
	TotalPrice float64  `json:"total_price"` // always Quantity * UnitPrice
	ImageURLs  []string `json:"image_urls"`
	Details    *string  `json:"details,omitempty"`
}

// ComputeTotal sets TotalPrice from Quantity and UnitPrice
func (p *PurchasedItem) ComputeTotal() {
	p.TotalPrice = float64(p.Quantity) * p.UnitPrice
}
