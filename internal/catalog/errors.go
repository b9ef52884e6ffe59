package catalog

import "net/http"

// emptyQueryError rejects a search without a term (400).
type emptyQueryError struct{}

func (emptyQueryError) Error() string { return "search term is required" }
func (emptyQueryError) StatusCode() int { return http.StatusBadRequest }

// ErrEmptyQuery is returned by Search for an empty term.
var ErrEmptyQuery error = emptyQueryError{}

// IsEmptyQuery reports whether err rejects an empty search term.
func IsEmptyQuery(err error) bool {
	_, ok := err.(emptyQueryError)
	return ok
}
