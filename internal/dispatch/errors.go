package dispatch

import (
	"errors"
	"fmt"
)

const (
	OutcomeCards      = "cards"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeEmpty      = "empty"
	OutcomeTransport  = "transport"
	OutcomeStale      = "stale"
)

// ValidationError means the input was blank after trimming, no request was made.
type ValidationError struct{}

func (ValidationError) Error() string {
	return "Please enter a country name"
}

// NotFoundError means the service answered with a status outside of 2xx.
type NotFoundError struct {
	Status int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Country not found. Please check the spelling and try again. (Status: %d)", e.Status)
}

// EmptyResultError means the service answered 2xx with an empty list.
type EmptyResultError struct{}

func (EmptyResultError) Error() string {
	return "No countries found matching your search."
}

// TransportError carries a network or decoding failure, its message is the
// underlying error's.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return e.Err.Error()
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// Classify returns the outcome label of an error returned by a dispatch, nil
// classifies as a successful dispatch.
func Classify(err error) string {
	if err == nil {
		return OutcomeCards
	}
	var validation ValidationError
	var notFound NotFoundError
	var empty EmptyResultError
	switch {
	case errors.As(err, &validation):
		return OutcomeValidation
	case errors.As(err, &notFound):
		return OutcomeNotFound
	case errors.As(err, &empty):
		return OutcomeEmpty
	}
	return OutcomeTransport
}
