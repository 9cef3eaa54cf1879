package domain

import "time"

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that only touch at an endpoint do not
// overlap, so a session ending at 12:00 never collides with one starting at
// 12:00. This is the reference definition of overlap for the whole system;
// the SQL range checks in the repository layer mirror it exactly.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
