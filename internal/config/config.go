// Package config loads the per-year report profiles.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed profiles/*.toml
var embedded embed.FS

// Profile holds everything that differs between report years: where the
// exports live, how their headers are spelled, the unit lookup table and
// the reports and charts to produce.
type Profile struct {
	Year int `toml:"year"`
	// BaseDir is the root of the year's files. A leading ~ is expanded.
	BaseDir    string `toml:"base_dir"`
	MergedDir  string `toml:"merged_dir"`
	FiguresDir string `toml:"figures_dir"`

	EntityLabel   string `toml:"entity_label"`
	CategoryLabel string `toml:"category_label"`

	Renames  map[string]string `toml:"renames"`
	Entities []Entity          `toml:"entities"`
	Sources  map[string]Source `toml:"sources"`
	Reports  []Report          `toml:"reports"`
	Charts   []Chart           `toml:"charts"`
}

// Entity is one row of the unit lookup table.
type Entity struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Source is one portal export: a single workbook (Path) or a directory of
// per-unit volume workbooks (Dir).
type Source struct {
	Path      string   `toml:"path"`
	Dir       string   `toml:"dir"`
	Sheet     string   `toml:"sheet"`
	Marker    string   `toml:"marker"`
	EntityKey string   `toml:"entity_key"`
	Headers   []string `toml:"headers"`
}

// Report describes one merged spreadsheet.
type Report struct {
	Name           string   `toml:"name"`
	Sheet          string   `toml:"sheet"`
	Sources        []string `toml:"sources"`
	Layout         string   `toml:"layout"`
	EntityHeader   string   `toml:"entity_header"`
	CategoryHeader string   `toml:"category_header"`
	EntityWidth    float64  `toml:"entity_width"`
	FreezeCols     *int     `toml:"freeze_cols"`
	Columns        []Column `toml:"columns"`
}

// Column is one report column after the unit and category columns.
type Column struct {
	Header   string  `toml:"header"`
	Key      string  `toml:"key"`
	Width    float64 `toml:"width"`
	Wrap     bool    `toml:"wrap"`
	Lower    bool    `toml:"lower"`
	Date     bool    `toml:"date"`
	Required bool    `toml:"required"`
	Group    string  `toml:"group"`
}

// Chart describes one bubble chart of record counts.
type Chart struct {
	Name           string `toml:"name"`
	Source         string `toml:"source"`
	AffiliationKey string `toml:"affiliation_key"`
	// Fallback replaces an empty affiliation; empty means skip the record.
	Fallback string `toml:"fallback"`
	Title    string `toml:"title"`
	XLabel   string `toml:"x_label"`
	YLabel   string `toml:"y_label"`
	// AllEntities uses every unit of the lookup table, sorted, as the x axis.
	AllEntities  bool     `toml:"all_entities"`
	Entities     []string `toml:"entities"`
	Affiliations []string `toml:"affiliations"`
	Scale        float64  `toml:"scale"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	Palette      string   `toml:"palette"`
	CSV          bool     `toml:"csv"`
}

// Years returns the report years with a built-in profile.
func Years() []int {
	entries, err := embedded.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var years []int
	for _, e := range entries {
		y, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".toml"))
		if err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent year with a built-in profile.
func LatestYear() int {
	years := Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

// Load reads the profile at path, or the built-in profile for year when
// path is empty.
func Load(year int, path string) (*Profile, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
	} else {
		data, err = embedded.ReadFile(fmt.Sprintf("profiles/%d.toml", year))
		if err != nil {
			return nil, fmt.Errorf("no built-in profile for %d (have %v)", year, Years())
		}
		path = fmt.Sprintf("built-in %d", year)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a profile. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return nil, err
	}
	p.applyDefaults()

	base, err := ExpandHome(p.BaseDir)
	if err != nil {
		return nil, err
	}
	p.BaseDir = base

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) applyDefaults() {
	if p.MergedDir == "" {
		p.MergedDir = "merged_files"
	}
	if p.FiguresDir == "" {
		p.FiguresDir = "figures"
	}
	if p.EntityLabel == "" {
		p.EntityLabel = "Facility"
	}
	if p.CategoryLabel == "" {
		p.CategoryLabel = "Platform"
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
