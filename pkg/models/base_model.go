package models

import "github.com/aretw0/burrow/pkg/core"

// BaseModel is an entity with no attributes beyond identity and timestamps.
type BaseModel struct {
	core.Base
}

// NewBaseModel returns a BaseModel with a fresh identity.
func NewBaseModel() *BaseModel {
	m := &BaseModel{}
	core.Init(m)
	return m
}

func (m *BaseModel) Class() string       { return "BaseModel" }
func (m *BaseModel) Schema() core.Schema { return nil }
func (m *BaseModel) String() string      { return core.Render(m) }
