// Package matter compensates printed dimensions for filament shrinkage.
package matter

import (
	"fmt"
	"sort"
	"strings"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{Name: "pla", shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

var materials = map[string]ViscousMaterial{
	PLA.Name: PLA,
}

// ViscousMaterial describes how a thermoplastic shrinks as it cools.
type ViscousMaterial struct {
	Name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage of holes, in millimetres.
	pullShrink float64
}

// ByName returns the material with the given case insensitive name.
func ByName(name string) (ViscousMaterial, error) {
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		return ViscousMaterial{}, fmt.Errorf("unknown material %q, known materials: %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the known material names, sorted.
func Names() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExternalDimScale returns the size to model so an outside dimension prints at real.
func (m ViscousMaterial) ExternalDimScale(real float64) float64 {
	return real / (1 - m.shrink)
}

// InternalDimScale returns the size to model so a hole prints at real.
// Holes shrink more than outside dimensions since the melt pulls inward.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
