package turnover

import (
	"github.com/hashicorp/go-multierror"
)

// ParseError reports input that could not be tokenized into the expected
// number of numeric values. It is always user-correctable.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "turnover: parse: " + e.Reason
}

// Code returns the wire error code used by handler summary logs.
func (e *ParseError) Code() string { return "PARSE_ERROR" }

// RangeError aggregates every field that violated its domain bounds.
// All violations are collected before returning, not just the first.
type RangeError struct {
	merr *multierror.Error
}

func newRangeError(merr *multierror.Error) *RangeError {
	return &RangeError{merr: merr}
}

func (e *RangeError) Error() string {
	return e.merr.Error()
}

func (e *RangeError) Unwrap() error { return e.merr }

// Code returns the wire error code used by handler summary logs.
func (e *RangeError) Code() string { return "RANGE_ERROR" }

// Violations returns one human-readable message per out-of-range field,
// in field declaration order.
func (e *RangeError) Violations() []string {
	out := make([]string, 0, len(e.merr.Errors))
	for _, err := range e.merr.Errors {
		out = append(out, err.Error())
	}
	return out
}
