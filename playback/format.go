package playback

import "strconv"

// FormatTime converts milliseconds to hh:mm:ss.
// Hours are not wrapped, so ten hours is "10:00:00" and a hundred hours "100:00:00".
func FormatTime(ms int) string {
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	return padZero(hours) + ":" + padZero(minutes%60) + ":" + padZero(seconds%60)
}

func padZero(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
