package points

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zombor/receipt-points/internal/receipt"
)

// Parsed is a receipt whose fields have been converted to typed values
type Parsed struct {
	Retailer     string
	PurchaseDate time.Time
	PurchaseTime time.Time
	Total        decimal.Decimal
	Items        []ParsedItem
}

// ParsedItem is a receipt item with a typed price
type ParsedItem struct {
	ShortDescription string
	Price            decimal.Decimal
}

// Parse converts the text fields of r into the typed values the rules work
// on. It fails with a *receipt.MalformedFieldError naming the first field that
// does not parse; nothing is defaulted.
func Parse(r receipt.Receipt) (Parsed, error) {
	date, err := time.Parse(receipt.DateLayout, r.PurchaseDate)
	if err != nil {
		return Parsed{}, malformed("purchaseDate", r.PurchaseDate, err)
	}

	clock, err := receipt.ParseClock(r.PurchaseTime)
	if err != nil {
		return Parsed{}, malformed("purchaseTime", r.PurchaseTime, err)
	}

	total, err := receipt.ParseAmount(r.Total)
	if err != nil {
		return Parsed{}, malformed("total", r.Total, err)
	}

	items := make([]ParsedItem, 0, len(r.Items))
	for i, item := range r.Items {
		price, err := receipt.ParseAmount(item.Price)
		if err != nil {
			return Parsed{}, malformed(fmt.Sprintf("items[%d].price", i), item.Price, err)
		}
		items = append(items, ParsedItem{
			ShortDescription: item.ShortDescription,
			Price:            price,
		})
	}

	return Parsed{
		Retailer:     r.Retailer,
		PurchaseDate: date,
		PurchaseTime: clock,
		Total:        total,
		Items:        items,
	}, nil
}

func malformed(field, value string, err error) error {
	return &receipt.MalformedFieldError{Field: field, Value: value, Err: err}
}
