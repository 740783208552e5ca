// Package format turns raw prices and dates into the strings shown on event
// cards, booking summaries and checkout pages.
package format

import "strconv"

const (
	Free            = "FREE"
	DefaultCurrency = "€"
	perPersonSuffix = " per person"
)

type priceOptions struct {
	currency      string
	showPerPerson bool
}

type PriceOption func(*priceOptions)

func WithCurrency(symbol string) PriceOption {
	return func(o *priceOptions) {
		o.currency = symbol
	}
}

func WithPerPerson() PriceOption {
	return func(o *priceOptions) {
		o.showPerPerson = true
	}
}

// Price formats an optional price. A nil or zero price is Free.
func Price(price *float64, opts ...PriceOption) string {
	if price == nil || *price == 0 {
		return Free
	}

	o := priceOptions{currency: DefaultCurrency}
	for _, opt := range opts {
		opt(&o)
	}

	s := o.currency + strconv.FormatFloat(*price, 'f', -1, 64)
	if o.showPerPerson {
		s += perPersonSuffix
	}

	return s
}

func PriceWithPerPerson(price *float64) string {
	return Price(price, WithPerPerson())
}

func Amount(v float64) *float64 {
	return &v
}
