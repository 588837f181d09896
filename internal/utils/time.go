package utils

const secondsPerDay = 86400

// DayKey maps a unix timestamp (seconds) to its UTC calendar day, expressed
// as days since the epoch. Two timestamps share a DayKey iff they fall on
// the same UTC date.
func DayKey(unixSec int64) int64 {
	if unixSec >= 0 {
		return unixSec / secondsPerDay
	}
	return (unixSec - secondsPerDay + 1) / secondsPerDay
}
