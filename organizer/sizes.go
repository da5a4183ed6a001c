package organizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dunamismax/go-cli/models"
)

// DefaultSizeRanges returns the built-in buckets for organizing by
// size. A Max of -1 means unbounded.
func DefaultSizeRanges() []models.SizeRange {
	return []models.SizeRange{
		{Min: 0, Max: 1024, Label: "small"},
		{Min: 1024, Max: 1024 * 1024, Label: "medium"},
		{Min: 1024 * 1024, Max: 100 * 1024 * 1024, Label: "large"},
		{Min: 100 * 1024 * 1024, Max: -1, Label: "huge"},
	}
}

// ValidateSizeRanges rejects malformed bucketing rules. It runs before
// any filesystem work starts.
func ValidateSizeRanges(ranges []models.SizeRange) error {
	if len(ranges) == 0 {
		return fmt.Errorf("%w: no ranges given", ErrInvalidSizeRange)
	}
	for i, r := range ranges {
		if r.Label == "" {
			return fmt.Errorf("%w: range %d has no label", ErrInvalidSizeRange, i)
		}
		if r.Min < 0 {
			return fmt.Errorf("%w: range %q has a negative minimum", ErrInvalidSizeRange, r.Label)
		}
		if r.Max != -1 && r.Max <= r.Min {
			return fmt.Errorf("%w: range %q maximum %d is not above minimum %d", ErrInvalidSizeRange, r.Label, r.Max, r.Min)
		}
	}
	return nil
}

// sizeLabel returns the label of the first range containing size, or
// "unknown" when no range matches.
func sizeLabel(ranges []models.SizeRange, size int64) string {
	for _, r := range ranges {
		if size >= r.Min && (r.Max == -1 || size < r.Max) {
			return r.Label
		}
	}
	return "unknown"
}

// ParseSize converts a human size string like "100", "1KB" or "1.5GB"
// to bytes using binary units. An empty string parses to zero.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "TB"):
		multiplier = 1024 * 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "TB")
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse size %q", s)
	}
	return int64(value * float64(multiplier)), nil
}

// ParseSizeRanges parses a range list of the form
// "0:1KB:small,1KB:1MB:medium,1MB:inf:large". Each entry is
// min:max:label where max accepts "inf" for unbounded. The resulting
// ranges are validated before being returned.
func ParseSizeRanges(spec string) ([]models.SizeRange, error) {
	var ranges []models.SizeRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %q is not min:max:label", ErrInvalidSizeRange, part)
		}

		min, err := ParseSize(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSizeRange, err)
		}

		max := int64(-1)
		if m := strings.ToLower(strings.TrimSpace(fields[1])); m != "inf" && m != "-1" {
			max, err = ParseSize(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSizeRange, err)
			}
		}

		ranges = append(ranges, models.SizeRange{
			Min:   min,
			Max:   max,
			Label: strings.TrimSpace(fields[2]),
		})
	}

	if err := ValidateSizeRanges(ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}
