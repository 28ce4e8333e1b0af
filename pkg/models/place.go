package models

import "github.com/aretw0/burrow/pkg/core"

// Place is a listing owned by a User in a City.
type Place struct {
	core.Base
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64
}

// NewPlace returns a Place with a fresh identity.
func NewPlace() *Place {
	p := &Place{}
	core.Init(p)
	return p
}

func (p *Place) Class() string  { return "Place" }
func (p *Place) String() string { return core.Render(p) }

func (p *Place) Schema() core.Schema {
	return core.Schema{
		core.String("city_id", &p.CityID),
		core.String("user_id", &p.UserID),
		core.String("name", &p.Name),
		core.String("description", &p.Description),
		core.Int("number_rooms", &p.NumberRooms),
		core.Int("number_bathrooms", &p.NumberBathrooms),
		core.Int("max_guest", &p.MaxGuest),
		core.Int("price_by_night", &p.PriceByNight),
		core.Float("latitude", &p.Latitude),
		core.Float("longitude", &p.Longitude),
	}
}
