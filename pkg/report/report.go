// Package report writes an [inventory.Report] as CSV, JSON or a terminal
// table.
//
// Every format has the same columns:
//
//	Dependency, Version (Input), Version (Latest), Packaging, Name, Description, Licenses
//
// Entries whose lookup failed have no artifact and are left out of the
// rows; they are passed to [Options.Skipped] instead.
package report

import (
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/inventory"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// Formats lists the supported formats; the first is the default.
var Formats = []Format{FormatCSV, FormatJSON, FormatTable}

// Header is the column header shared by all formats.
var Header = []string{
	"Dependency",
	"Version (Input)",
	"Version (Latest)",
	"Packaging",
	"Name",
	"Description",
	"Licenses",
}

// ParseFormat validates a user supplied format name. The empty string
// selects CSV.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return Formats[0], nil
	}
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", s, FormatNames())
}

// FormatNames returns the names of [Formats], for flag help and completion.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// Row is one reported dependency.
type Row struct {
	Dependency    string `json:"dependency"`
	InputVersion  string `json:"version_input"`
	LatestVersion string `json:"version_latest"`
	Packaging     string `json:"packaging"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Licenses      string `json:"licenses"`
}

// Record returns the row's fields in [Header] order.
func (r Row) Record() []string {
	return []string{r.Dependency, r.InputVersion, r.LatestVersion, r.Packaging, r.Name, r.Description, r.Licenses}
}

// Options configures Write.
type Options struct {
	// Skipped is called for each entry without an artifact (optional).
	Skipped func(inventory.Entry)
}

// Rows converts the successful entries of r to rows, in entry order.
func Rows(r *inventory.Report, skipped func(inventory.Entry)) []Row {
	rows := make([]Row, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.OK() {
			if skipped != nil {
				skipped(e)
			}
			continue
		}
		a := e.Artifact
		rows = append(rows, Row{
			Dependency:    e.Dependency,
			InputVersion:  e.Version,
			LatestVersion: a.Version,
			Packaging:     a.Packaging,
			Name:          a.Name,
			Description:   a.Description,
			Licenses:      strings.Join(a.Licenses, "/"),
		})
	}
	return rows
}

// Write encodes r to w in format f.
func Write(w io.Writer, r *inventory.Report, f Format, opts Options) error {
	rows := Rows(r, opts.Skipped)
	switch f {
	case FormatCSV, "":
		return writeCSV(w, rows)
	case FormatJSON:
		return writeJSON(w, r, rows)
	case FormatTable:
		return writeTable(w, rows)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}
