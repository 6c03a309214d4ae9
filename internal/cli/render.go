package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roach88/tracklog/internal/entry"
	"github.com/roach88/tracklog/internal/store"
	"github.com/roach88/tracklog/internal/validate"
)

// entryDTO is the JSON shape of an entry in CLI output.
type entryDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Minutes     int    `json:"minutes"`
	Description string `json:"description"`
	DeletedAt   string `json:"deletedAt,omitempty"`
}

func toDTO(e entry.Entry, loc *time.Location) entryDTO {
	dto := entryDTO{
		ID:          e.ID,
		Date:        e.Date.In(loc).Format("2006-01-02"),
		Minutes:     e.Minutes,
		Description: e.Description,
	}
	if e.DeletedAt != nil {
		dto.DeletedAt = e.DeletedAt.In(loc).Format(time.RFC3339)
	}
	return dto
}

func toDTOs(entries []entry.Entry, loc *time.Location) []entryDTO {
	dtos := make([]entryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toDTO(e, loc)
	}
	return dtos
}

// writeEntryTable renders the text listing: date, minutes, description,
// then a totals footer. The layout is fixed; golden tests snapshot it.
func writeEntryTable(w io.Writer, entries []entry.Entry, loc *time.Location) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}

	fmt.Fprintf(w, "%-12s%6s  %s\n", "DATE", "MIN", "DESCRIPTION")
	total := 0
	for _, e := range entries {
		fmt.Fprintf(w, "%-12s%6d  %s\n", e.Date.In(loc).Format("2006-01-02"), e.Minutes, e.Description)
		total += e.Minutes
	}
	fmt.Fprintf(w, "\n%d entries, %d minutes\n", len(entries), total)
}

// reportError prints a domain error through the formatter with a
// distinguishable code, then returns a silent ExitError so main exits
// non-zero without printing the error twice.
func reportError(f *OutputFormatter, err error) error {
	code := CodeStorage
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		code = CodeValidation
	case errors.Is(err, store.ErrCapacityExceeded):
		code = CodeCapacity
	}
	_ = f.Error(code, err.Error(), nil)
	return NewExitError(ExitFailure, "")
}
