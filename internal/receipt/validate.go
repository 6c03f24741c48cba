package receipt

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the layout of Receipt.PurchaseDate
	DateLayout = "2006-01-02"
	// TimeLayout is the layout of Receipt.PurchaseTime
	TimeLayout = "15:04"

	// MaxAmountDigits bounds the whole part of an amount, which keeps every
	// score derived from it well inside an int
	MaxAmountDigits = 12
	// MaxAmountScale bounds the fractional digits of an amount
	MaxAmountScale = 32
)

var (
	validate = newValidator()
	nonBlank = regexp.MustCompile(`\S`)

	// Plain digits only: no sign, no exponent, digits on both sides of the point
	plainAmount = regexp.MustCompile(`^([0-9]+)(?:\.([0-9]+))?$`)
	clockForm   = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonBlank.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := ParseAmount(fl.Field().String())
		return err == nil
	})

	return v
}

// ParseAmount parses a non-negative decimal money amount such as "6.49".
// Signs, exponents and amounts beyond MaxAmountDigits whole digits or
// MaxAmountScale fractional digits are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	m := plainAmount.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, errors.New("not a plain decimal amount")
	}
	if len(strings.TrimLeft(m[1], "0")) > MaxAmountDigits {
		return decimal.Zero, fmt.Errorf("more than %d whole digits", MaxAmountDigits)
	}
	if len(m[2]) > MaxAmountScale {
		return decimal.Zero, fmt.Errorf("more than %d fractional digits", MaxAmountScale)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal amount: %w", err)
	}
	return d, nil
}

// ParseClock parses a 24-hour time of day in HH:MM form. Both parts must
// have two digits, so "9:05" is rejected.
func ParseClock(s string) (time.Time, error) {
	if !clockForm.MatchString(s) {
		return time.Time{}, errors.New("not in HH:MM form")
	}
	return time.Parse(TimeLayout, s)
}

// Validate checks that a receipt has every field needed to score it, in the
// expected format. The returned error is a *ValidationError.
func Validate(r *Receipt) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Err: err}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe.Tag()),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath strips the root struct name from a validator namespace:
// "Receipt.items[0].price" becomes "items[0].price"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "date":
		return "must be a date in YYYY-MM-DD form"
	case "clock":
		return "must be a 24-hour time in HH:MM form"
	case "amount":
		return "must be a non-negative decimal amount"
	default:
		return "is invalid"
	}
}
