// SPDX-License-Identifier: MIT

// Package dataset holds the problem-size table and the deterministic input
// patterns every kernel is benchmarked and verified on.
//
// Sizes are runtime values (Mini through ExtraLarge) rather than compile-time
// constants, so one binary covers the whole table. The init functions are
// generic over the element type and fill caller storage in place.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Size selects one row of the dimension table.
type Size int

const (
	Mini Size = iota
	Small
	Medium
	Large
	ExtraLarge
)

var (
	// ErrUnknownSize indicates a size name ParseSize does not recognise.
	ErrUnknownSize = errors.New("dataset: unknown size")

	// ErrUnknownKernel indicates a kernel name with no row in the dimension table.
	ErrUnknownKernel = errors.New("dataset: unknown kernel")
)

var sizeNames = [...]string{"mini", "small", "medium", "large", "extralarge"}

// String returns the lower-case name of s ("mini" ... "extralarge").
func (s Size) String() string {
	if s < Mini || s > ExtraLarge {
		return fmt.Sprintf("Size(%d)", int(s))
	}

	return sizeNames[s]
}

// Sizes lists every size in ascending order.
func Sizes() []Size {
	return []Size{Mini, Small, Medium, Large, ExtraLarge}
}

// ParseSize accepts a size name case-insensitively. Besides the String forms
// it understands "extra-large", "xl" and the MINI_DATASET ... EXTRALARGE_DATASET
// macro spelling.
func ParseSize(name string) (Size, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(key, "_dataset")
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	if key == "xl" {
		return ExtraLarge, nil
	}
	for i, n := range sizeNames {
		if key == n {
			return Size(i), nil
		}
	}

	return Mini, fmt.Errorf("%w: %q", ErrUnknownSize, name)
}

// Set parses name into s, so a *Size can back a command-line flag.
func (s *Size) Set(name string) error {
	v, err := ParseSize(name)
	if err != nil {
		return err
	}
	*s = v

	return nil
}

// Type names the flag value kind in usage output.
func (s *Size) Type() string { return "size" }
