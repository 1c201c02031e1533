package query

import "fmt"

// ParseError reports a malformed filter or order-by expression. The store
// facade surfaces it to callers as an invalid-argument error before any
// scan happens.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}
