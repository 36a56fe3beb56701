// Package product defines the immutable product configuration that every
// pipeline stage receives.
//
// A Product is constructed once at process start from CLI flags or a config
// file and passed by value; no stage reads ambient global state.
package product

import (
	"fmt"
	"strings"
)

// Product identifies what the pipeline generates creatives for.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InputError reports malformed product configuration. It is fatal and is
// raised before any network call is made.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid product config: %s %s", e.Field, e.Reason)
}

// New builds a validated Product from operator-supplied values.
func New(name, description string) (Product, error) {
	p := Product{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate checks required fields.
func (p Product) Validate() error {
	if p.Name == "" {
		return &InputError{Field: "name", Reason: "is required"}
	}
	if p.Description == "" {
		return &InputError{Field: "description", Reason: "is required"}
	}
	return nil
}

// Slug returns the filesystem-safe directory name for this product.
// All artifacts for one product live under this slug, preventing
// cross-product collisions.
func (p Product) Slug() string {
	return Slugify(p.Name)
}
