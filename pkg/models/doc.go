// Package models declares the concrete entity types stored by burrow and
// the Catalog that maps class names back to them.
//
// Every type embeds core.Base and adds only named attributes:
//
//	r := models.NewReview()
//	r.PlaceID = place.ID
//	r.Text = "Great stay"
//	err := core.Save(ctx, engine, r)
package models
