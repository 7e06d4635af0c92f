package model

// Component is a node of the building model graph.
type Component interface {
	Name() string
	SetName(name string)
	BaseName() string
	SetRatedName(name string)
	Kind() Kind
	object() *Object
}

// Object carries identity and containment for every component. Containment
// is split by role so callers ask exactly the question they mean.
type Object struct {
	name     string
	baseName string
	kind     Kind

	airLoop       *AirLoop
	plantLoop     *PlantLoop
	demandLoop    *PlantLoop
	container     Component
	zoneContainer Component
	zone          *ThermalZone
}

func newObject(kind Kind, name string) Object {
	return Object{name: name, baseName: name, kind: kind}
}

func (o *Object) Name() string { return o.name }

// SetName renames the object and resets its base name.
func (o *Object) SetName(name string) {
	o.name = name
	o.baseName = name
}

// SetRatedName replaces the visible name but keeps the base name, so a
// rating suffix can be recomposed without accumulating.
func (o *Object) SetRatedName(name string) { o.name = name }

func (o *Object) BaseName() string {
	if o.baseName == "" {
		return o.name
	}
	return o.baseName
}

func (o *Object) Kind() Kind { return o.kind }

func (o *Object) object() *Object { return o }

// AirLoopOf returns the air loop whose supply side holds c directly.
// Components nested inside a unitary or terminal unit report none.
func AirLoopOf(c Component) Optional[*AirLoop] {
	if o := c.object(); o.airLoop != nil {
		return Some(o.airLoop)
	}
	return None[*AirLoop]()
}

// PlantLoopOf returns the plant loop whose supply side holds c.
func PlantLoopOf(c Component) Optional[*PlantLoop] {
	if o := c.object(); o.plantLoop != nil {
		return Some(o.plantLoop)
	}
	return None[*PlantLoop]()
}

// DemandLoopOf returns the plant loop whose demand side holds c.
func DemandLoopOf(c Component) Optional[*PlantLoop] {
	if o := c.object(); o.demandLoop != nil {
		return Some(o.demandLoop)
	}
	return None[*PlantLoop]()
}

// ContainingHVAC returns the unitary unit or air terminal wrapping c.
func ContainingHVAC(c Component) Optional[Component] {
	if o := c.object(); o.container != nil {
		return Some(o.container)
	}
	return None[Component]()
}

// ContainingZoneHVAC returns the zone equipment (PTAC, PTHP, fan coil,
// baseboard) wrapping c.
func ContainingZoneHVAC(c Component) Optional[Component] {
	if o := c.object(); o.zoneContainer != nil {
		return Some(o.zoneContainer)
	}
	return None[Component]()
}

// ZoneOf returns the thermal zone c serves as zone equipment.
func ZoneOf(c Component) Optional[*ThermalZone] {
	if o := c.object(); o.zone != nil {
		return Some(o.zone)
	}
	return None[*ThermalZone]()
}

func setContainer(parent Component, children ...Component) {
	for _, ch := range children {
		if isNil(ch) {
			continue
		}
		ch.object().container = parent
	}
}

func setZoneContainer(parent Component, children ...Component) {
	for _, ch := range children {
		if isNil(ch) {
			continue
		}
		ch.object().zoneContainer = parent
	}
}

// isNil catches typed nil pointers stored in the Component interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	switch v := c.(type) {
	case *Fan:
		return v == nil
	case *HeatingCoil:
		return v == nil
	case *CoolingCoil:
		return v == nil
	}
	return false
}
