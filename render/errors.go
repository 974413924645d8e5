package render

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates no API credential was provided. Nothing is
// sent to the API without a credential
var ErrMissingAPIKey = errors.New("a Render API key must be provided")

// APIError indicates the API responded with a status outside the 2xx
// range. The response body is kept as-is for the caller
type APIError struct {
	StatusCode int
	Body       string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("render api responded with status %d: %s", err.StatusCode, err.Body)
}

// TransportError indicates the request never produced a usable response
type TransportError struct {
	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("unable to reach render api: %s", err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}
