package models

import "github.com/aretw0/burrow/pkg/core"

// User is an account holder.
type User struct {
	core.Base
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// NewUser returns a User with a fresh identity.
func NewUser() *User {
	u := &User{}
	core.Init(u)
	return u
}

func (u *User) Class() string  { return "User" }
func (u *User) String() string { return core.Render(u) }

func (u *User) Schema() core.Schema {
	return core.Schema{
		core.String("email", &u.Email),
		core.String("password", &u.Password),
		core.String("first_name", &u.FirstName),
		core.String("last_name", &u.LastName),
	}
}
