package models

import "github.com/aretw0/burrow/pkg/core"

// Review is a User's text about a Place.
// PlaceID and UserID are plain references; they are not resolved or checked.
type Review struct {
	core.Base
	PlaceID string
	UserID  string
	Text    string
}

// NewReview returns a Review with a fresh identity.
func NewReview() *Review {
	r := &Review{}
	core.Init(r)
	return r
}

func (r *Review) Class() string  { return "Review" }
func (r *Review) String() string { return core.Render(r) }

func (r *Review) Schema() core.Schema {
	return core.Schema{
		core.String("place_id", &r.PlaceID),
		core.String("user_id", &r.UserID),
		core.String("text", &r.Text),
	}
}
