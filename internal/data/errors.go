package data

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by DataStorage.Get for unknown keys.
var ErrNotFound = errors.New("artifact not found")

// FetchError is any failure to obtain market data: transport, timeout,
// non-2xx status or an undecodable body. Callers treat it as "no data this run".
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch market data from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err carries a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
