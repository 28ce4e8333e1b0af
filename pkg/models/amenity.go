package models

import "github.com/aretw0/burrow/pkg/core"

type Amenity struct {
	core.Base
	Name string
}

func NewAmenity() *Amenity {
	a := &Amenity{}
	core.Init(a)
	return a
}

func (a *Amenity) Class() string  { return "Amenity" }
func (a *Amenity) String() string { return core.Render(a) }

func (a *Amenity) Schema() core.Schema {
	return core.Schema{
		core.String("name", &a.Name),
	}
}
