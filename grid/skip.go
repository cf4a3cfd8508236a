package grid

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidSkip is wrapped by every SkipError.
var ErrInvalidSkip = errors.New("invalid skip specification")

// SkipError describes an offending token of a skip specification.
type SkipError struct {
	// Token is the literal offending substring.
	Token  string
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("%q: %s", e.Token, e.Reason)
}

func (e *SkipError) Unwrap() error {
	return ErrInvalidSkip
}

// SkipSet is a set of part numbers to omit from the grid.
type SkipSet map[int]struct{}

// NewSkipSet creates a SkipSet with given part numbers.
func NewSkipSet(parts ...int) SkipSet {
	s := SkipSet{}
	for _, p := range parts {
		s[p] = struct{}{}
	}
	return s
}

// Contains returns true if part is to be skipped.
func (s SkipSet) Contains(part int) bool {
	_, ok := s[part]
	return ok
}

// Sorted returns all part numbers in ascending order.
func (s SkipSet) Sorted() []int {
	parts := make([]int, 0, len(s))
	for p := range s {
		parts = append(parts, p)
	}
	slices.Sort(parts)
	return parts
}

func parseSkipNumber(token, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &SkipError{Token: token, Reason: "not a number"}
	}
	return n, nil
}

// parseSkipToken parses a single "n" or "a-b" token, calling add for each part number.
func parseSkipToken(token string, maxParts int, add func(int)) error {
	if start, end, ok := strings.Cut(token, "-"); ok {
		a, err := parseSkipNumber(token, start)
		if err != nil {
			return err
		}
		b, err := parseSkipNumber(token, end)
		if err != nil {
			return err
		}
		if a < 1 {
			return &SkipError{Token: token, Reason: "range start must be at least 1"}
		}
		if a > b {
			return &SkipError{Token: token, Reason: "range start is greater than range end"}
		}
		if a > maxParts {
			return &SkipError{Token: token, Reason: fmt.Sprintf("range start exceeds the number of parts (%d)", maxParts)}
		}
		// Parts beyond maxParts do not exist.
		for n := a; n <= min(b, maxParts); n++ {
			add(n)
		}
		return nil
	}

	n, err := parseSkipNumber(token, token)
	if err != nil {
		return err
	}
	if n < 1 {
		return &SkipError{Token: token, Reason: "part number must be at least 1"}
	}
	if n > maxParts {
		return &SkipError{Token: token, Reason: fmt.Sprintf("part number exceeds the number of parts (%d)", maxParts)}
	}
	add(n)
	return nil
}

func skipTokens(text string) []string {
	var tokens []string
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ParseSkip parses a comma separated list of part numbers ("3") and inclusive ranges ("1-4").
// Empty or white space only text gives an empty set.
// Part numbers of all valid tokens are returned even when other tokens are invalid, in which case
// the error joins a *SkipError for each of them; callers must then not use the set at all, as a
// partially applied set would skip fewer parts than asked.
func ParseSkip(text string, maxParts int) (SkipSet, error) {
	set := SkipSet{}
	var errs []error
	for _, token := range skipTokens(text) {
		if err := parseSkipToken(token, maxParts, func(n int) { set[n] = struct{}{} }); err != nil {
			errs = append(errs, err)
		}
	}
	return set, errors.Join(errs...)
}

// ValidateSkip returns the first *SkipError of text, if any, suitable for display.
func ValidateSkip(text string, maxParts int) error {
	for _, token := range skipTokens(text) {
		if err := parseSkipToken(token, maxParts, func(int) {}); err != nil {
			return err
		}
	}
	return nil
}
