package models

import "github.com/aretw0/burrow/pkg/core"

// City belongs to a State through StateID.
type City struct {
	core.Base
	StateID string
	Name    string
}

func NewCity() *City {
	c := &City{}
	core.Init(c)
	return c
}

func (c *City) Class() string  { return "City" }
func (c *City) String() string { return core.Render(c) }

func (c *City) Schema() core.Schema {
	return core.Schema{
		core.String("state_id", &c.StateID),
		core.String("name", &c.Name),
	}
}
