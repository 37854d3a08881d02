package domain

import "time"

// CalendarLink connects a pro to an external calendar account.
// The refresh token is used to mint short-lived access tokens on demand.
type CalendarLink struct {
	ProID        int64
	Provider     string
	CalendarID   string
	RefreshToken string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Calendar providers.
const (
	CalendarProviderGoogle = "google"
)
