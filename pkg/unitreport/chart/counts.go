package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
)

// Counts holds the number of records per unit and affiliation.
type Counts map[string]map[string]int

// CountOptions selects the record fields to count by.
type CountOptions struct {
	EntityKey      string
	AffiliationKey string
	// Fallback replaces an empty affiliation. Empty means such records are skipped.
	Fallback string
	Logger   *slog.Logger
}

// Count tallies records by unit and affiliation. Affiliations are trimmed
// and get an upper case first letter, since drop-down values vary in both.
func Count(records []models.Record, opts CountOptions) Counts {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	counts := make(Counts)
	for _, rec := range records {
		entity := rec.Text(opts.EntityKey)
		affiliation := capitalize(rec.Text(opts.AffiliationKey))
		if affiliation == "" {
			if opts.Fallback == "" {
				log.Warn("no affiliation", "unit", entity, "file", rec.Source, "row", rec.Row)
				continue
			}
			affiliation = opts.Fallback
		}
		counts.Add(entity, affiliation, 1)
	}
	return counts
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Add increases the count of a unit and affiliation by n.
func (c Counts) Add(entity, affiliation string, n int) {
	m, ok := c[entity]
	if !ok {
		m = make(map[string]int)
		c[entity] = m
	}
	m[affiliation] += n
}

// Get returns the count of a unit and affiliation.
func (c Counts) Get(entity, affiliation string) int {
	return c[entity][affiliation]
}

// Entities returns the units with at least one record, sorted.
func (c Counts) Entities() []string {
	out := make([]string, 0, len(c))
	for e := range c {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Affiliations returns all affiliations seen, sorted.
func (c Counts) Affiliations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range c {
		for a := range m {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, m := range c {
		for _, n := range m {
			total += n
		}
	}
	return total
}

// MismatchError reports configured labels that differ from those in the data.
type MismatchError struct {
	What    string
	Missing []string // configured, absent from the data
	Extra   []string // in the data, not configured
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("configured %s do not match input: not in input %q, not configured %q",
		e.What, e.Missing, e.Extra)
}

// checkLabels compares a configured label order against the labels in the data.
func checkLabels(what string, configured, actual []string) error {
	want := make(map[string]bool, len(configured))
	for _, s := range configured {
		want[s] = true
	}
	have := make(map[string]bool, len(actual))
	for _, s := range actual {
		have[s] = true
	}
	e := &MismatchError{What: what}
	for _, s := range configured {
		if !have[s] {
			e.Missing = append(e.Missing, s)
		}
	}
	for _, s := range actual {
		if !want[s] {
			e.Extra = append(e.Extra, s)
		}
	}
	if len(e.Missing) == 0 && len(e.Extra) == 0 {
		return nil
	}
	sort.Strings(e.Missing)
	sort.Strings(e.Extra)
	return e
}

// WriteCSV writes the counts as a table with one row per unit and one
// column per affiliation, in the given orders.
func (c Counts) WriteCSV(w io.Writer, header string, entities, affiliations []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{header}, affiliations...)); err != nil {
		return err
	}
	for _, e := range entities {
		row := []string{e}
		for _, a := range affiliations {
			row = append(row, strconv.Itoa(c.Get(e, a)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
