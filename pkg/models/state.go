package models

import "github.com/aretw0/burrow/pkg/core"

type State struct {
	core.Base
	Name string
}

func NewState() *State {
	s := &State{}
	core.Init(s)
	return s
}

func (s *State) Class() string  { return "State" }
func (s *State) String() string { return core.Render(s) }

func (s *State) Schema() core.Schema {
	return core.Schema{
		core.String("name", &s.Name),
	}
}
