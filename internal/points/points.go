// Package points computes the reward points a receipt is worth.
//
// Scoring is pure: it reads its input, performs no I/O and keeps no state, so
// it is safe to call from any number of goroutines.
//
// Current rules:
//   - One point for every alphanumeric character in the retailer name.
//   - 50 points if the total is a round dollar amount with no cents.
//   - 25 points if the total is a multiple of 0.25.
//   - 5 points for every two items on the receipt.
//   - If the trimmed length of an item description is a multiple of 3, the
//     item's price multiplied by 0.2 and rounded up.
//   - 6 points if the day in the purchase date is odd.
//   - 10 points if the time of purchase is at or after 14:00 and before 16:00.
package points

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/zombor/receipt-points/internal/receipt"
)

const (
	RoundDollarPoints = 50
	QuarterPoints     = 25
	ItemPairPoints    = 5
	OddDayPoints      = 6
	AfternoonPoints   = 10

	afternoonStartHour = 14
	afternoonEndHour   = 16
)

var (
	// QuarterStep is the amount a total must be a multiple of to earn
	// QuarterPoints.
	QuarterStep = decimal.New(25, -2)

	// QuarterTolerance is how far from a multiple of QuarterStep a total may
	// be and still count. Totals are exact decimals, so no slack is needed.
	QuarterTolerance = decimal.Zero

	descriptionMultiplier = decimal.New(2, -1)
)

// Breakdown holds the points each rule contributed
type Breakdown struct {
	Retailer    int
	RoundDollar int
	Quarter     int
	ItemPairs   int
	Description int
	OddDay      int
	Afternoon   int
}

// Total sums every rule
func (b Breakdown) Total() int {
	return b.Retailer + b.RoundDollar + b.Quarter + b.ItemPairs + b.Description + b.OddDay + b.Afternoon
}

// Score applies every rule to a parsed receipt
func Score(p Parsed) Breakdown {
	return Breakdown{
		Retailer:    retailerPoints(p.Retailer),
		RoundDollar: roundDollarPoints(p.Total),
		Quarter:     quarterPoints(p.Total),
		ItemPairs:   itemPairPoints(len(p.Items)),
		Description: descriptionPoints(p.Items),
		OddDay:      oddDayPoints(p.PurchaseDate.Day()),
		Afternoon:   afternoonPoints(p.PurchaseTime.Hour()),
	}
}

// Calculate parses r and returns its total points
func Calculate(r receipt.Receipt) (int, error) {
	p, err := Parse(r)
	if err != nil {
		return 0, err
	}
	return Score(p).Total(), nil
}

// Calculator adapts Calculate to receipt.Scorer
type Calculator struct{}

// Points implements receipt.Scorer
func (Calculator) Points(r receipt.Receipt) (int, error) {
	return Calculate(r)
}

func retailerPoints(retailer string) int {
	var n int
	for _, r := range retailer {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			n++
		}
	}
	return n
}

func roundDollarPoints(total decimal.Decimal) int {
	if total.IsInteger() {
		return RoundDollarPoints
	}
	return 0
}

func quarterPoints(total decimal.Decimal) int {
	if total.Mod(QuarterStep).Abs().LessThanOrEqual(QuarterTolerance) {
		return QuarterPoints
	}
	return 0
}

func itemPairPoints(count int) int {
	return count / 2 * ItemPairPoints
}

func descriptionPoints(items []ParsedItem) int {
	var n int
	for _, item := range items {
		if utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))%3 != 0 {
			continue
		}
		// Prices have at most receipt.MaxAmountDigits whole digits, so this fits
		n += int(item.Price.Mul(descriptionMultiplier).Ceil().IntPart())
	}
	return n
}

func oddDayPoints(day int) int {
	if day%2 != 0 {
		return OddDayPoints
	}
	return 0
}

func afternoonPoints(hour int) int {
	if hour >= afternoonStartHour && hour < afternoonEndHour {
		return AfternoonPoints
	}
	return 0
}
