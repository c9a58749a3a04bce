package webpower

import "fmt"

// Error is the single error type surfaced by the client. It covers both
// transport faults (Code holds the SOAP fault code) and calls the provider
// rejected (Code holds the raw value the provider returned).
type Error struct {
	Message string
	Code    any
}

func (e *Error) Error() string {
	if e.Code == nil {
		return "webpower: " + e.Message
	}
	return fmt.Sprintf("webpower: %s (code: %v)", e.Message, e.Code)
}
