package services

import (
	"errors"
	"fmt"
)

const (
	// EmptyQueryNotice is shown to the user instead of issuing a request.
	EmptyQueryNotice = "Enter the city name!"
	// FallbackProviderMessage is used when a failed response has no message.
	FallbackProviderMessage = "Error fetching data!"
	NetworkErrorMessage     = "Network error. Please try again."
)

var (
	ErrEmptyQuery = errors.New(EmptyQueryNotice)
	// ErrSuperseded is returned when a newer submit replaced this one before
	// its response arrived; the response was discarded.
	ErrSuperseded = errors.New("query superseded by a newer submission")
)

// ProviderError is a non-200 status reported in the provider payload.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.UserMessage())
}

// UserMessage is the text shown in the Error state.
func (e *ProviderError) UserMessage() string {
	if e.Message == "" {
		return FallbackProviderMessage
	}
	return e.Message
}
