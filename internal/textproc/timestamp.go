package textproc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTimestamp renders a duration as "[HH:MM:SS]" with floor-second
// truncation. Hours grow without bound, so multi-day inputs stay exact.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("[%02d:%02d:%02d]", total/3600, (total%3600)/60, total%60)
}

// ParseTimestamp is the inverse of FormatTimestamp. Re-rendering the parsed
// duration yields the identical tag.
func ParseTimestamp(tag string) (time.Duration, error) {
	s := strings.TrimSpace(tag)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", tag)
	}

	fields := make([]int64, 3)
	for i, part := range parts {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("malformed timestamp %q", tag)
		}
		fields[i] = v
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("malformed timestamp %q", tag)
	}

	total := fields[0]*3600 + fields[1]*60 + fields[2]
	return time.Duration(total) * time.Second, nil
}
