package domain

// Game is a rentable item with a finite stock. PricePerDay is in minor
// currency units.
type Game struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	StockTotal   int32  `json:"stockTotal"`
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"` // Populated on listing
	PricePerDay  int64  `json:"pricePerDay"`
}
