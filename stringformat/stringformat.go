// (c) Copyright 2018 Hewlett Packard Enterprise Development LP

// Package stringformat provides small text-alignment and lookup helpers
// used to keep trace-log columns aligned.
package stringformat

import "fmt"

// AlignmentType selects how FixedLengthString pads or truncates its value.
type AlignmentType int

const (
	LeftAlign AlignmentType = iota
	RightAlign
	CenterAlign
)

// FixedLengthString renders value as a string of exactly length
// characters: truncated if longer, padded (per align) if shorter.
func FixedLengthString(length int, value interface{}, align AlignmentType) string {
	s := fmt.Sprintf("%v", value)
	if len(s) >= length {
		return s[:length]
	}
	pad := length - len(s)
	switch align {
	case RightAlign:
		return spaces(pad) + s
	case CenterAlign:
		left := pad / 2
		right := pad - left
		return spaces(left) + s + spaces(right)
	default: // LeftAlign
		return s + spaces(pad)
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// StringLookup reports whether value equals input (when input is a
// string) or is present in input (when input is a []string).
func StringLookup(input interface{}, value string) bool {
	switch v := input.(type) {
	case string:
		return v == value
	case []string:
		for _, s := range v {
			if s == value {
				return true
			}
		}
		return false
	default:
		return false
	}
}
