package session

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseScore parses a practice score in one of three forms:
//
//	"8/10"  correct out of attempted
//	"80%"   percentage, recorded on a 100-question scale
//	"8"     bare count, recorded out of 10
//
// An empty string means no questions were practised.
func ParseScore(input string) (questionsDone, correct int, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, nil
	}

	if before, after, found := strings.Cut(input, "/"); found {
		correct, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, input)
		}
		total, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, input)
		}
		if total <= 0 || correct < 0 || correct > total {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, input)
		}
		return total, correct, nil
	}

	if percent, found := strings.CutSuffix(input, "%"); found {
		value, err := strconv.Atoi(strings.TrimSpace(percent))
		if err != nil || value < 0 || value > 100 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, input)
		}
		return 100, value, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil || value < 0 || value > 10 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, input)
	}
	return 10, value, nil
}
