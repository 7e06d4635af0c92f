package standards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

// Format is the encoding of a reference data document.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Store is the reference data store. It is built once by a loader and is
// read-only afterwards.
type Store struct {
	version   string
	constants map[string]float64
	curves    map[string]model.Curve
	tables    map[string]*Table
}

type curveDoc struct {
	Name         string    `yaml:"name" json:"name"`
	Form         string    `yaml:"form" json:"form"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
	MinX         float64   `yaml:"min_x" json:"min_x"`
	MaxX         float64   `yaml:"max_x" json:"max_x"`
	MinY         float64   `yaml:"min_y" json:"min_y"`
	MaxY         float64   `yaml:"max_y" json:"max_y"`
}

type tableDoc struct {
	Keys []string         `yaml:"keys" json:"keys"`
	Rows []map[string]any `yaml:"rows" json:"rows"`
}

type document struct {
	Version   string              `yaml:"version" json:"version"`
	Constants map[string]float64  `yaml:"constants" json:"constants"`
	Curves    []curveDoc          `yaml:"curves" json:"curves"`
	Tables    map[string]tableDoc `yaml:"tables" json:"tables"`
}

// Load reads and validates a reference data document.
func Load(r io.Reader, f Format) (*Store, error) {
	var doc document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reference data: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reference data: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	s, err := build(doc)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads a document, picking the format from the extension.
func LoadFile(path string) (*Store, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(bytes.NewReader(b), f)
}

func build(doc document) (*Store, error) {
	s := &Store{
		version:   doc.Version,
		constants: map[string]float64{},
		curves:    map[string]model.Curve{},
		tables:    map[string]*Table{},
	}
	for k, v := range doc.Constants {
		s.constants[k] = v
	}
	for _, cd := range doc.Curves {
		form, err := model.ParseCurveForm(cd.Form)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCurve, cd.Name, err)
		}
		s.curves[cd.Name] = model.Curve{
			Name:         cd.Name,
			Form:         form,
			Coefficients: cd.Coefficients,
			MinX:         cd.MinX,
			MaxX:         cd.MaxX,
			MinY:         cd.MinY,
			MaxY:         cd.MaxY,
		}
	}
	for name, td := range doc.Tables {
		t := &Table{Name: name, Keys: td.Keys}
		for i, row := range td.Rows {
			rec, err := parseRow(name, i, td.Keys, row)
			if err != nil {
				return nil, err
			}
			t.Records = append(t.Records, rec)
		}
		s.tables[name] = t
	}
	return s, nil
}

func parseRow(table string, idx int, keys []string, row map[string]any) (*Record, error) {
	rec := &Record{
		Table:         table,
		Index:         idx,
		Applicability: map[string]string{},
		Payload:       map[string]float64{},
		Curves:        map[string]string{},
	}
	var capMin, capMax *float64
	var from, to time.Time

	for field, raw := range row {
		if raw == nil {
			continue
		}
		switch {
		case slices.Contains(keys, field):
			rec.Applicability[field] = scalarString(raw)
		case field == "minimum_capacity" || field == "maximum_capacity":
			v, ok := toFloat(raw)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: %s is not numeric", table, idx, field)
			}
			if field == "minimum_capacity" {
				capMin = &v
			} else {
				capMax = &v
			}
		case field == "start_date" || field == "end_date":
			d, err := toDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidDate, table, idx, err)
			}
			if field == "start_date" {
				from = d
			} else {
				to = d
			}
		default:
			if v, ok := toFloat(raw); ok {
				rec.Payload[field] = v
			} else if sv, ok := raw.(string); ok {
				rec.Curves[field] = sv
			}
		}
	}

	if capMin != nil || capMax != nil {
		r := Range{Min: 0, Max: 1e15}
		if capMin != nil {
			r.Min = *capMin
		}
		if capMax != nil {
			r.Max = *capMax
		}
		rec.Capacity = &r
	}
	if !from.IsZero() || !to.IsZero() {
		rec.Effective = &DateRange{From: from, To: to}
	}
	return rec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func scalarString(v any) string {
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	return fmt.Sprint(v)
}

func toDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return time.Parse(time.DateOnly, d)
	}
	return time.Time{}, fmt.Errorf("unsupported date value %v", v)
}

// Validate reports every malformed record and curve.
func (s *Store) Validate() error {
	var errs []error
	for _, name := range s.Tables() {
		for _, r := range s.tables[name].Records {
			if r.efficiencyFieldCount() > 1 {
				errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateEfficiency, r.ID()))
			}
			if r.Capacity != nil && r.Capacity.Max <= r.Capacity.Min {
				errs = append(errs, fmt.Errorf("%w: %s [%g, %g)", ErrInvalidRange, r.ID(), r.Capacity.Min, r.Capacity.Max))
			}
			if e := r.Effective; e != nil && !e.From.IsZero() && !e.To.IsZero() && !e.To.After(e.From) {
				errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDate, r.ID()))
			}
			// kW/ton, converted to a COP that sizes the cooling tower
			if v, ok := r.Value("minimum_full_load_efficiency"); ok && name == "chillers" && v <= 0 {
				errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidEfficiency, r.ID()))
			}
		}
	}
	for _, c := range s.curves {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidCurve, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) Version() string { return s.version }

// Table returns the named table.
func (s *Store) Table(name string) (*Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Tables lists table names in sorted order.
func (s *Store) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (s *Store) Constant(name string) model.Optional[float64] {
	if v, ok := s.constants[name]; ok {
		return model.Some(v)
	}
	return model.None[float64]()
}

// CurveSpec implements model.CurveSource.
func (s *Store) CurveSpec(name string) (model.Curve, bool) {
	c, ok := s.curves[name]
	return c, ok
}
