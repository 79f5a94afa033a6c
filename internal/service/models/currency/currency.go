package currency

import (
	"database/sql/driver"
	"errors"
)

type Currency string

const (
	CurrencyNGN Currency = "NGN"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyNGN.String():
		return CurrencyNGN, nil
	default:
		return "", ErrInvalidCurrency
	}
}
