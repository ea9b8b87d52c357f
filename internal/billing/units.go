// Package billing converts timed service minutes into billable units
// following the CMS eight-minute rule used for timed CPT codes.
package billing

import "cardintake/internal/domain"

// MaxMinutesPerCharge caps a single charge line at one full workday of
// treatment minutes. Anything above it is a data-entry mistake.
const MaxMinutesPerCharge = 480

// UnitsForMinutes returns the billable units for a number of timed minutes.
// Fewer than 8 minutes bills zero units; from there each 15-minute block
// bills one unit, with a remainder of 8 or more minutes rounding up.
//
//	 8-22 minutes -> 1 unit
//	23-37 minutes -> 2 units
//	38-52 minutes -> 3 units
func UnitsForMinutes(minutes int) (int, error) {
	if minutes < 0 || minutes > MaxMinutesPerCharge {
		return 0, domain.ErrInvalidMinutes
	}
	if minutes < 8 {
		return 0, nil
	}
	return (minutes + 7) / 15, nil
}
