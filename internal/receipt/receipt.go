package receipt

import "time"

// Receipt is a submitted purchase receipt. Amounts, dates and times are kept
// as the text that was submitted; they are parsed when points are computed.
type Receipt struct {
	Retailer     string `json:"retailer" validate:"required,notblank"`
	PurchaseDate string `json:"purchaseDate" validate:"required,date"`
	PurchaseTime string `json:"purchaseTime" validate:"required,clock"`
	Items        []Item `json:"items" validate:"required,dive"`
	Total        string `json:"total" validate:"required,amount"`
}

// Item is a single line on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price" validate:"required,amount"`
}

// Clone returns a deep copy of the receipt
func (r Receipt) Clone() Receipt {
	c := r
	if r.Items != nil {
		c.Items = make([]Item, len(r.Items))
		copy(c.Items, r.Items)
	}
	return c
}

// Record pairs an accepted receipt with the ID it was stored under
type Record struct {
	ID        string    `json:"id"`
	Receipt   Receipt   `json:"receipt"`
	CreatedAt time.Time `json:"created_at"`
}
