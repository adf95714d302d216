package resolver

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	isoPattern      = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
	digitRunPattern = regexp.MustCompile(`\d+`)
)

// FormatISO8601 renders an ISO-8601 duration ("PT3M30S") as hh:mm:ss.
// Unparseable input yields "".
func FormatISO8601(iso string) string {
	m := isoPattern.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	days, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	hours, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	mins, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	secs, _ := strconv.Atoi(zeroIfEmpty(m[4]))
	return clockFormat(days*24+hours, mins, secs)
}

// FormatDigitRuns renders provider-native durations like "1h2m3s" (or a
// bare seconds count) as hh:mm:ss by extracting only the numeric runs,
// interpreted right to left as seconds, minutes, hours. No runs yields "".
func FormatDigitRuns(raw string) string {
	runs := digitRunPattern.FindAllString(raw, -1)
	if len(runs) == 0 {
		return ""
	}
	if len(runs) > 3 {
		runs = runs[len(runs)-3:]
	}

	var parts [3]int // hours, minutes, seconds
	for i, j := len(runs)-1, 2; i >= 0; i, j = i-1, j-1 {
		parts[j], _ = strconv.Atoi(runs[i])
	}
	return clockFormat(parts[0], parts[1], parts[2])
}

func clockFormat(hours, mins, secs int) string {
	mins += secs / 60
	secs %= 60
	hours += mins / 60
	mins %= 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
