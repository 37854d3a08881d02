package domain

import "time"

// ProSettings represents a pro's booking configuration
type ProSettings struct {
	ProID               int64
	SlotDurationMinutes int
	RequiresDeposit     bool
	DepositPercent      int // percentage of the lesson price charged upfront
	AutoConfirm         bool
	PriceAmount         int64 // lesson price in minor currency units
	Currency            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DepositFor returns the deposit in minor units for the given lesson price,
// rounded half-up
func (s *ProSettings) DepositFor(priceAmount int64) int64 {
	if !s.RequiresDeposit || s.DepositPercent <= 0 {
		return 0
	}
	return (priceAmount*int64(s.DepositPercent) + 50) / 100
}

// DefaultSettings returns the configuration used for pros that have not
// customized theirs
func DefaultSettings(proID int64) *ProSettings {
	return &ProSettings{
		ProID:               proID,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		RequiresDeposit:     false,
		DepositPercent:      DefaultDepositPercent,
		AutoConfirm:         true,
		Currency:            DefaultCurrency,
	}
}
