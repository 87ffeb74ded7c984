package domain

import "math"

// Money is an amount in cents. Arithmetic stays in integers; Dollars is for
// display and the JSON wire format only.
type Money struct {
	Cents int64
}

func MoneyFromDollars(amount float64) Money {
	return Money{Cents: int64(math.Round(amount * 100))}
}

func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Scale multiplies by factor, rounding half away from zero to the nearest cent.
func (m Money) Scale(factor float64) Money {
	return Money{Cents: int64(math.Round(float64(m.Cents) * factor))}
}
