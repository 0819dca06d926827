// Package xlsx reads memorized ranges from a spreadsheet.
//
// Expected columns, one range per row after a header row:
//
//	A surah | B ayah_from | C ayah_to | D memorized_on
//
// An empty ayah_to means a single ayah; empty ayah_from and ayah_to mean the
// whole surah. memorized_on may be a date cell or YYYY-MM-DD text.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sabros/sabr-backend/internal/domain"
)

// RangeRow is one parsed spreadsheet row.
type RangeRow struct {
	Row         int // 1-based spreadsheet row
	Surah       int
	AyahFrom    int
	AyahTo      int
	MemorizedOn time.Time // zero when the cell is empty
}

// RowError reports a row that could not be parsed.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ReadRanges parses every data row of sheet (the first sheet when empty).
// Bad rows are returned as RowErrors and do not stop the import.
func ReadRanges(path, sheet string) ([]RangeRow, []RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	// Raw values keep date cells as serial numbers instead of locale text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var (
		out  []RangeRow
		errs []RowError
	)
	for i, cells := range rows {
		if i == 0 || blank(cells) {
			continue
		}
		row, err := parseRow(cells, f.GetWorkbookProps)
		if err != nil {
			errs = append(errs, RowError{Row: i + 1, Err: err})
			continue
		}
		row.Row = i + 1
		out = append(out, row)
	}
	return out, errs, nil
}

func parseRow(cells []string, props func() (excelize.WorkbookPropsOptions, error)) (RangeRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	var r RangeRow
	var err error

	if r.Surah, err = atoi("surah", cell(0)); err != nil {
		return RangeRow{}, err
	}

	switch from, to := cell(1), cell(2); {
	case from == "" && to == "":
		r.AyahFrom, r.AyahTo = 1, domain.AyahCount(r.Surah)
	case to == "":
		if r.AyahFrom, err = atoi("ayah_from", from); err != nil {
			return RangeRow{}, err
		}
		r.AyahTo = r.AyahFrom
	default:
		if r.AyahFrom, err = atoi("ayah_from", from); err != nil {
			return RangeRow{}, err
		}
		if r.AyahTo, err = atoi("ayah_to", to); err != nil {
			return RangeRow{}, err
		}
	}

	if d := cell(3); d != "" {
		date1904 := false
		if p, err := props(); err == nil && p.Date1904 != nil {
			date1904 = *p.Date1904
		}
		if r.MemorizedOn, err = parseDate(d, date1904); err != nil {
			return RangeRow{}, err
		}
	}

	rng := domain.MemorizedRange{SurahNumber: r.Surah, AyahFrom: r.AyahFrom, AyahTo: r.AyahTo}
	if err := rng.Validate(); err != nil {
		return RangeRow{}, err
	}
	return r, nil
}

func atoi(field, s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s: required", field)
	}
	// Numeric cells may come back as "67" or "67.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%s: %q is not a whole number", field, s)
	}
	return int(f), nil
}

// parseDate accepts an Excel serial date or YYYY-MM-DD text.
func parseDate(s string, date1904 bool) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, fmt.Errorf("memorized_on: %w", err)
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("memorized_on: %q is not a date", s)
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
