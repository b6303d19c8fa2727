package utils

import "math"

// Quote is the price snapshot captured on a reservation at cart time.
// All amounts are integer cents.
type Quote struct {
	ChargeCents  int32
	DepositCents int32
	TaxCents     int32
}

func (q Quote) TotalCents() int32 {
	return q.ChargeCents + q.DepositCents + q.TaxCents
}

// PriceReservation computes the snapshot for a rental of the given whole-day
// length: the charge is the per-day price times days, the deposit and tax
// are configured fractions of the charge, rounded half up.
func PriceReservation(pricePerDayCents int32, days int, depositRate, taxRate float64) Quote {
	charge := pricePerDayCents * int32(days)
	return Quote{
		ChargeCents:  charge,
		DepositCents: roundCents(float64(charge) * depositRate),
		TaxCents:     roundCents(float64(charge) * taxRate),
	}
}

func roundCents(v float64) int32 {
	return int32(math.Round(v))
}
