package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VLAN IDs 0 and 4095 are reserved; usable IDs are 1-4094.
const (
	MinVLANID = 1
	MaxVLANID = 4094
)

// ValidateVLANID checks that id is a usable VLAN ID (1-4094).
func ValidateVLANID(id int) error {
	if id < MinVLANID || id > MaxVLANID {
		return fmt.Errorf("invalid VLAN ID %d (must be %d-%d)", id, MinVLANID, MaxVLANID)
	}
	return nil
}

// ParseVLANRange parses a VLAN range specification into inclusive bounds.
// Supports "600-699" and a single value "650" (start == end).
func ParseVLANRange(spec string) (start, end int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, fmt.Errorf("empty VLAN range")
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start value in range %s: %v", spec, err)
		}
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end value in range %s: %v", spec, err)
		}
	} else {
		start, err = strconv.Atoi(spec)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid value: %s", spec)
		}
		end = start
	}

	if start > end {
		return 0, 0, fmt.Errorf("start value %d greater than end value %d in range %s", start, end, spec)
	}
	if err := ValidateVLANID(start); err != nil {
		return 0, 0, err
	}
	if err := ValidateVLANID(end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// CompactRange compacts a list of integers into range notation
// [1, 2, 3, 5, 7, 8, 9] -> "1-3,5,7-9"
func CompactRange(values []int) string {
	if len(values) == 0 {
		return ""
	}

	// Sort and deduplicate
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	sorted = dedupInts(sorted)

	var parts []string
	start := sorted[0]
	end := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == end+1 {
			end = sorted[i]
		} else {
			parts = append(parts, formatRange(start, end))
			start = sorted[i]
			end = sorted[i]
		}
	}
	parts = append(parts, formatRange(start, end))

	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	result := []int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			result = append(result, sorted[i])
		}
	}
	return result
}
