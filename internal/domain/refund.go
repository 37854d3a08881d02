package domain

import "time"

// Refund policy tiers, by time remaining before the lesson start
const (
	fullRefundNotice = 24 * time.Hour
	halfRefundNotice = 12 * time.Hour
)

// CalculateRefund maps (lesson start, current time, price) to the refund owed
// under the tiered cancellation policy:
//
//	>= 24h before start: 100%
//	>= 12h and < 24h:     50%
//	 < 12h or elapsed:     0%
//
// priceAmount is in minor currency units. The refund amount is rounded
// half-up to the smallest unit; the returned percentage is derived from the
// rounded amount so the two are always consistent when displayed together.
// A zero or negative price yields (0, 0): the percentage is not computable.
func CalculateRefund(bookingStart, now time.Time, priceAmount int64) (refundAmount int64, refundPercent int) {
	if priceAmount <= 0 {
		return 0, 0
	}

	remaining := bookingStart.Sub(now)

	var tier int64
	switch {
	case remaining >= fullRefundNotice:
		tier = 100
	case remaining >= halfRefundNotice:
		tier = 50
	default:
		return 0, 0
	}

	refundAmount = (priceAmount*tier + 50) / 100
	refundPercent = int((refundAmount*100 + priceAmount/2) / priceAmount)

	return refundAmount, refundPercent
}
