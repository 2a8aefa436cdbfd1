// Package service contains the domain rules between the HTTP handlers and
// the repositories. Authorization decisions are delegated to the authz policy
// table; services supply the actor and the ownership fact.
package service

import (
	"dinely/internal/authz"
	"dinely/internal/models"
)

// Actor identifies who is performing an operation. A zero-value Actor is an
// anonymous caller.
type Actor struct {
	ID       uint
	Username string
	Role     models.Role
}

// Anonymous reports whether the actor is unauthenticated.
func (a Actor) Anonymous() bool {
	return a.Role == authz.RoleAnonymous
}
