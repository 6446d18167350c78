package domain

import "time"

// Pakistan's epidemiological seasons. The windows overlap on purpose:
// September and October belong to both the monsoon and post-monsoon
// windows, matching how the surveillance archive labels them.

// IsMonsoon reports whether m falls in the monsoon window (June-October).
func IsMonsoon(m time.Month) bool {
	return m >= time.June && m <= time.October
}

// IsPostMonsoon reports whether m falls in the post-monsoon window
// (September-November), the peak dengue transmission period.
func IsPostMonsoon(m time.Month) bool {
	return m >= time.September && m <= time.November
}

// IsWinter reports whether m falls in the winter window (December-March).
func IsWinter(m time.Month) bool {
	return m == time.December || m <= time.March
}
