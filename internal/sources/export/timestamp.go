package export

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp interprets an ADD_DATE / LAST_MODIFIED value.
// Browsers write seconds since the Unix epoch; some Firefox and Safari
// exports use milliseconds (13 digits) or microseconds (16 digits).
// Zero, negative and non-numeric values are reported as absent.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return time.Time{}, false
	}

	switch {
	case len(raw) >= 16:
		return time.UnixMicro(v).UTC(), true
	case len(raw) >= 13:
		return time.UnixMilli(v).UTC(), true
	default:
		return time.Unix(v, 0).UTC(), true
	}
}
