package animreview

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeRange bounds an analysis to a sub-range of the video, in seconds.
// A nil bound is open: the zero value means the entire video, and a single
// open bound is resolved server-side when the video duration is unknown.
type TimeRange struct {
	Start *float64
	End   *float64
}

// IsFull reports whether no clipping was requested.
func (r TimeRange) IsFull() bool { return r.Start == nil && r.End == nil }

func (r TimeRange) String() string {
	if r.IsFull() {
		return "full"
	}
	start, end := "0s", "end"
	if r.Start != nil {
		start = formatSeconds(*r.Start)
	}
	if r.End != nil {
		end = formatSeconds(*r.End)
	}
	return start + "-" + end
}

// ResolveTimeRange turns optional textual duration tokens into a canonical
// (start, end) pair in seconds. Accepted token forms: "5s", "1.5s", bare
// seconds "5", millisecond counts "1500ms", and colon-delimited "1:30" or
// "0:01:30". duration is the known video length in seconds; pass 0 when
// unknown. Resolution depends only on its inputs.
func ResolveTimeRange(startTok, endTok string, duration float64) (TimeRange, error) {
	if startTok == "" && endTok == "" {
		return TimeRange{}, nil
	}

	var r TimeRange
	if startTok != "" {
		s, err := parseDurationToken(startTok)
		if err != nil {
			return TimeRange{}, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, startTok, err)
		}
		r.Start = &s
	}
	if endTok != "" {
		e, err := parseDurationToken(endTok)
		if err != nil {
			return TimeRange{}, fmt.Errorf("%w: end %q: %v", ErrInvalidRange, endTok, err)
		}
		r.End = &e
	}

	// Default a missing bound to the opposite extreme. The start extreme is
	// always zero; the end extreme needs a known duration.
	if r.Start == nil && r.End != nil {
		zero := 0.0
		r.Start = &zero
	}
	if r.End == nil && duration > 0 {
		d := duration
		r.End = &d
	}

	if duration > 0 {
		if r.Start != nil && *r.Start > duration {
			return TimeRange{}, fmt.Errorf("%w: start %s beyond video duration %s",
				ErrInvalidRange, formatSeconds(*r.Start), formatSeconds(duration))
		}
		if r.End != nil && *r.End > duration {
			return TimeRange{}, fmt.Errorf("%w: end %s beyond video duration %s",
				ErrInvalidRange, formatSeconds(*r.End), formatSeconds(duration))
		}
	}
	if r.Start != nil && r.End != nil && *r.End <= *r.Start {
		return TimeRange{}, fmt.Errorf("%w: end %s must be after start %s",
			ErrInvalidRange, formatSeconds(*r.End), formatSeconds(*r.Start))
	}
	return r, nil
}

// parseDurationToken parses one textual duration into seconds.
func parseDurationToken(tok string) (float64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, fmt.Errorf("empty token")
	}

	if strings.Contains(tok, ":") {
		return parseClockToken(tok)
	}

	unit := 1.0
	num := tok
	switch {
	case strings.HasSuffix(tok, "ms"):
		unit = 0.001
		num = strings.TrimSuffix(tok, "ms")
	case strings.HasSuffix(tok, "s"):
		num = strings.TrimSuffix(tok, "s")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("not a duration")
	}
	if v < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return v * unit, nil
}

// parseClockToken parses "m:ss" or "h:mm:ss", with optional fractional
// seconds in the last segment.
func parseClockToken(tok string) (float64, error) {
	parts := strings.Split(tok, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("not a clock time")
	}
	var total float64
	for i, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("not a clock time")
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("not a clock time")
		}
		// Only the last segment may be fractional.
		if i < len(parts)-1 && v != float64(int(v)) {
			return 0, fmt.Errorf("not a clock time")
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("segment %q out of range", p)
		}
		total = total*60 + v
	}
	return total, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}
