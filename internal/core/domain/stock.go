package domain

// StockLevel is one row of the remote product_sizes table.
type StockLevel struct {
	Size           string `json:"size"`
	TotalStock     int    `json:"total_stock"`
	ReservedStock  int    `json:"reserved_stock"`
	AvailableStock int    `json:"available_stock"`
}

// StockTotals aggregates stock levels across all sizes.
type StockTotals struct {
	Total     int `json:"total"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

// SumStock aggregates per-size levels into totals. Summing one fetched slice
// keeps the sizes and the totals of a response consistent with each other.
func SumStock(levels []StockLevel) StockTotals {
	var totals StockTotals
	for _, l := range levels {
		totals.Total += l.TotalStock
		totals.Reserved += l.ReservedStock
		totals.Available += l.AvailableStock
	}
	return totals
}

// Profile is the customer-editable profile row owned by the remote backend.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
}
