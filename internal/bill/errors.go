package bill

import (
	"errors"
	"fmt"
)

// StatusError is a store rejection carrying the HTTP status it derives
// from. 404 ("no resource found") and 500 ("server error") must stay
// distinguishable all the way up to the view.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Erreur %d", e.Code)
}

// NotFound reports whether err is a 404-flavored store rejection.
func NotFound(err error) bool {
	return statusCode(err) == 404
}

// ServerError reports whether err is a 500-flavored store rejection.
func ServerError(err error) bool {
	return statusCode(err) == 500
}

func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}

	return 0
}
