package standards

import (
	"slices"
	"strings"
)

// Search key field names.
const (
	FieldTemplate       = "template"
	FieldFuelType       = "fuel_type"
	FieldFluidType      = "fluid_type"
	FieldCoolingType    = "cooling_type"
	FieldCondenserType  = "condenser_type"
	FieldCompressorType = "compressor_type"
	FieldSubcategory    = "subcategory"
	FieldHeatingType    = "heating_type"
	FieldNumberOfPoles  = "number_of_poles"
	FieldType           = "type"
)

// SearchKey maps categorical field names to the values a record must
// carry. Absent fields impose no constraint. Keys are built per lookup and
// never kept.
type SearchKey map[string]string

// NewSearchKey returns a key constrained to the given template.
func NewSearchKey(template string) SearchKey {
	return SearchKey{FieldTemplate: template}
}

// Set assigns field. An empty value removes it.
func (k SearchKey) Set(field, value string) SearchKey {
	if value == "" {
		delete(k, field)
		return k
	}
	k[field] = value
	return k
}

func (k SearchKey) Delete(field string) SearchKey {
	delete(k, field)
	return k
}

func (k SearchKey) Get(field string) (string, bool) {
	v, ok := k[field]
	return v, ok
}

func (k SearchKey) Clone() SearchKey {
	out := make(SearchKey, len(k))
	for f, v := range k {
		out[f] = v
	}
	return out
}

// String renders the key with sorted fields, for logs.
func (k SearchKey) String() string {
	fields := make([]string, 0, len(k))
	for f := range k {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f)
		b.WriteByte('=')
		b.WriteString(k[f])
	}
	b.WriteByte('}')
	return b.String()
}
