// Package model is an in-memory building model graph: typed HVAC
// components, air and plant loops, thermal zones, schedules and curves.
package model

import "fmt"

type Model struct {
	Name   string
	Curves *CurveRegistry

	components []Component
	names      map[string]struct{}
	airLoops   []*AirLoop
	plantLoops []*PlantLoop
	zones      []*ThermalZone
	schedules  map[string]*Schedule
}

type Option func(*Model)

// WithCurveSource backs the model's curve registry with src.
func WithCurveSource(src CurveSource) Option {
	return func(m *Model) { m.Curves = NewCurveRegistry(src) }
}

func New(name string, opts ...Option) *Model {
	m := &Model{
		Name:      name,
		Curves:    NewCurveRegistry(nil),
		names:     map[string]struct{}{},
		schedules: map[string]*Schedule{},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// UniqueName returns name, suffixed with a counter if it is already taken.
func (m *Model) UniqueName(name string) string {
	if _, taken := m.names[name]; !taken {
		return name
	}
	for i := 1; ; i++ {
		n := fmt.Sprintf("%s %d", name, i)
		if _, taken := m.names[n]; !taken {
			return n
		}
	}
}

func (m *Model) claim(name string) string {
	n := m.UniqueName(name)
	m.names[n] = struct{}{}
	return n
}

// Add registers c with the model, giving it a unique name. Components
// nested in c must be added separately.
func Add[T Component](m *Model, c T) T {
	name := c.Name()
	if name == "" {
		name = c.Kind().String()
	}
	c.SetName(m.claim(name))
	m.components = append(m.components, c)
	return c
}

func (m *Model) Components() []Component {
	return append([]Component(nil), m.components...)
}

// ComponentsOf returns every registered component of type T in
// registration order.
func ComponentsOf[T Component](m *Model) []T {
	var out []T
	for _, c := range m.components {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// ComponentByName returns the component currently carrying name.
func (m *Model) ComponentByName(name string) Optional[Component] {
	for _, c := range m.components {
		if c.Name() == name {
			return Some(c)
		}
	}
	return None[Component]()
}

func (m *Model) AddAirLoop(name string) *AirLoop {
	l := &AirLoop{name: m.claim(name), Sizing: defaultSizingSystem(), Availability: m.AlwaysOn()}
	m.airLoops = append(m.airLoops, l)
	return l
}

func (m *Model) AddPlantLoop(name string) *PlantLoop {
	p := &PlantLoop{name: m.claim(name), FluidType: "Water", MaximumLoopTemperature: 100}
	m.plantLoops = append(m.plantLoops, p)
	return p
}

func (m *Model) AddThermalZone(z *ThermalZone) *ThermalZone {
	z.name = m.claim(z.name)
	m.zones = append(m.zones, z)
	return z
}

func (m *Model) AirLoops() []*AirLoop { return append([]*AirLoop(nil), m.airLoops...) }

func (m *Model) PlantLoops() []*PlantLoop { return append([]*PlantLoop(nil), m.plantLoops...) }

func (m *Model) ThermalZones() []*ThermalZone { return append([]*ThermalZone(nil), m.zones...) }

// Schedule returns the named constant schedule, creating it with value v
// on first use.
func (m *Model) Schedule(name string, v float64) *Schedule {
	if s, ok := m.schedules[name]; ok {
		return s
	}
	s := &Schedule{Name: name, Default: v}
	m.schedules[name] = s
	return s
}

func (m *Model) AlwaysOn() *Schedule { return m.Schedule("Always On", 1) }

func (m *Model) AlwaysOff() *Schedule { return m.Schedule("Always Off", 0) }
