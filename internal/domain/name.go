package domain

import (
	"errors"
	"strings"
)

var ErrEmptyFullName = errors.New("full name cannot be empty")

// SplitFullName splits a display name into first/last parts on the last
// space. A single-word name becomes the first name with an empty last name.
func SplitFullName(name string) (first, last string, err error) {
	if strings.TrimSpace(name) == "" {
		return "", "", ErrEmptyFullName
	}

	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return strings.TrimSpace(name), "", nil
	}
	return name[:idx], name[idx+1:], nil
}

// JoinName rejoins name parts, tolerating an empty last name.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
