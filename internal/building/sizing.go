package building

import "github.com/Agrid-Dev/hvacstandards/internal/model"

// Results implements ports.SizingResults over values recorded from a
// previous sizing run.
type Results struct {
	values map[string]map[string]float64
}

func NewResults(values map[string]map[string]float64) *Results {
	if values == nil {
		values = map[string]map[string]float64{}
	}
	return &Results{values: values}
}

func (r *Results) AutosizedValue(_, objectName, field, _ string) model.Optional[float64] {
	if v, ok := r.values[objectName][field]; ok {
		return model.Some(v)
	}
	return model.None[float64]()
}

// Set records one autosized value, as a sizing run would.
func (r *Results) Set(objectName, field string, v float64) {
	if r.values[objectName] == nil {
		r.values[objectName] = map[string]float64{}
	}
	r.values[objectName][field] = v
}

// Weather implements ports.WeatherData from the description.
type Weather struct {
	temperature *float64
}

func (w Weather) HeatingDesignTemperature() model.Optional[float64] {
	if w.temperature == nil {
		return model.None[float64]()
	}
	return model.Some(*w.temperature)
}
