// Package importer parses the text and spreadsheet formats scorers paste or
// upload: team rosters and game box scores.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// RosterEntry is one player line of a roster.
type RosterEntry struct {
	Number       int
	Name         string
	Role         string
	PlaceOfBirth string
}

// Roster is the result of parsing a roster. Skipped holds the lines that
// were not headers yet could not be read as players.
type Roster struct {
	Entries []RosterEntry
	Skipped []string
}

// ParseRoster reads "number, last names, first names[, role[, place of birth]]"
// lines, separated by commas or tabs. A line with only two fields is taken
// as "number, full name". Title lines ("TEAM ...") and the column header
// ("UNIFORME N° ...") are ignored.
func ParseRoster(text string) Roster {
	var out Roster
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if isRosterHeader(line) {
			continue
		}
		fields := splitRosterLine(line)
		entry, ok := rosterEntry(fields)
		if !ok {
			out.Skipped = append(out.Skipped, line)
			continue
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}

// ParseRosterXLSX reads a roster from the first worksheet of an XLSX workbook,
// with the same columns as ParseRoster.
func ParseRosterXLSX(r io.Reader) (Roster, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Roster{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Roster{}, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Roster{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var out Roster
	for _, row := range rows {
		fields := make([]string, 0, len(row))
		for _, cell := range row {
			fields = append(fields, strings.TrimSpace(cell))
		}
		fields = trimTrailingEmpty(fields)
		joined := strings.Join(fields, ", ")
		if isRosterHeader(joined) {
			continue
		}
		entry, ok := rosterEntry(fields)
		if !ok {
			out.Skipped = append(out.Skipped, joined)
			continue
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func isRosterHeader(line string) bool {
	if line == "" {
		return true
	}
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "UNIFORME N") || strings.HasPrefix(upper, "TEAM")
}

func splitRosterLine(line string) []string {
	fields := readFields(line, ',')
	if len(fields) < 3 {
		if tabbed := readFields(line, '\t'); len(tabbed) > len(fields) {
			fields = tabbed
		}
	}
	return trimTrailingEmpty(fields)
}

func readFields(line string, sep rune) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	fields, err := r.Read()
	if err != nil {
		return nil
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func trimTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func rosterEntry(fields []string) (RosterEntry, bool) {
	if len(fields) < 2 {
		return RosterEntry{}, false
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil || number < 0 {
		return RosterEntry{}, false
	}

	entry := RosterEntry{Number: number}
	if len(fields) == 2 {
		entry.Name = fields[1]
	} else {
		entry.Name = strings.TrimSpace(fields[2] + " " + fields[1])
	}
	if len(fields) > 3 {
		entry.Role = fields[3]
	}
	if len(fields) > 4 {
		entry.PlaceOfBirth = fields[4]
	}
	if entry.Name == "" {
		return RosterEntry{}, false
	}
	return entry, true
}
