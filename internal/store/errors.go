package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrCapacityExceeded marks a write rejected because the underlying storage
// is out of space. Surfaced distinctly from other failures so callers can
// advise clearing data instead of showing a generic error.
var ErrCapacityExceeded = errors.New("storage capacity exceeded")

// wrapCapacity converts SQLITE_FULL into ErrCapacityExceeded, preserving the
// original error text. Other errors pass through unchanged.
func wrapCapacity(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrFull {
		return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	}
	return err
}
