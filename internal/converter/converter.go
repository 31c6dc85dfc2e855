// Package converter defines the backend-neutral contract for turning a
// natural-language request into a shell command.
//
// Backends live in subpackages (see converter/openai). Callers depend only
// on the Converter interface and the normalized Detail it returns.
package converter

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// Converter turns free-form text into a Detail.
type Converter interface {
	// Convert asks the backend for a command. Failures are
	// errors.KindConversion errors.
	Convert(ctx context.Context, question string) (Detail, error)
}

var (
	ErrNoDescriptions   = errors.New("detail has no descriptions")
	ErrBlankDescription = errors.New("detail has a blank description")
	ErrBlankCommand     = errors.New("detail has an empty command")
)

// Detail is the normalized result of one conversion: ordered explanations
// of the command's fragments and the command itself.
//
// The zero value is not a valid Detail. Use NewDetail.
type Detail struct {
	descriptions []string
	command      string
}

// NewDetail builds a Detail, copying descriptions. It fails if the result
// would not satisfy Validate.
func NewDetail(descriptions []string, command string) (Detail, error) {
	d := Detail{
		descriptions: slices.Clone(descriptions),
		command:      command,
	}
	if err := d.Validate(); err != nil {
		return Detail{}, err
	}
	return d, nil
}

// Validate checks that the detail has at least one non-blank description
// and a non-blank command.
func (d Detail) Validate() error {
	if len(d.descriptions) == 0 {
		return ErrNoDescriptions
	}
	for _, desc := range d.descriptions {
		if strings.TrimSpace(desc) == "" {
			return ErrBlankDescription
		}
	}
	if strings.TrimSpace(d.command) == "" {
		return ErrBlankCommand
	}
	return nil
}

// Descriptions returns a copy of the descriptions.
func (d Detail) Descriptions() []string {
	return slices.Clone(d.descriptions)
}

// Command returns the command string.
func (d Detail) Command() string {
	return d.command
}

// IsZero reports whether d is the zero Detail.
func (d Detail) IsZero() bool {
	return d.descriptions == nil && d.command == ""
}
