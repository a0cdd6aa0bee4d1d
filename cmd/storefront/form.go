package main

import (
	"fmt"
	"os"

	"github.com/cyphera/storefront/internal/checkout"
	"gopkg.in/yaml.v3"
)

// formFile is a checkout form as typed by a buyer. Field values are raw
// keyboard input; masks are applied on entry.
type formFile struct {
	Coupon string            `yaml:"coupon"`
	Fields map[string]string `yaml:"fields"`
}

func readForm(path string) (*formFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form %s: %w", path, err)
	}

	var form formFile
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to parse form %s: %w", path, err)
	}

	known := make(map[string]bool, len(checkout.AllFields))
	for _, f := range checkout.AllFields {
		known[string(f)] = true
	}
	for name := range form.Fields {
		if !known[name] {
			return nil, fmt.Errorf("form %s: unknown field %q", path, name)
		}
	}
	return &form, nil
}

// values returns the masked form state in field order
func (f *formFile) values() checkout.FormState {
	state := make(checkout.FormState, len(f.Fields))
	for _, field := range checkout.AllFields {
		raw, ok := f.Fields[string(field)]
		if !ok || raw == "" {
			continue
		}
		if m, masked := checkout.Masks[field]; masked {
			raw = m(raw)
		}
		state[field] = raw
	}
	return state
}

// fill types the form into a controller in field order, letting each
// lookup settle before leaving the field
func (f *formFile) fill(c *checkout.Controller) {
	for _, field := range checkout.AllFields {
		raw, ok := f.Fields[string(field)]
		if !ok || raw == "" {
			continue
		}
		c.Input(field, raw)
		c.Wait()
		c.Blur(field)
	}
}
