// Package authz holds the authorization policy as a pure decision function.
// Handlers and services ask "may this role perform this action on this
// resource, given ownership" and get a plain yes/no; no branch grants access
// implicitly.
package authz

import "dinely/internal/models"

// Resource identifies the kind of entity an action targets.
type Resource string

const (
	ResourceUser       Resource = "user"
	ResourceRestaurant Resource = "restaurant"
	ResourceReview     Resource = "review"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionList           Action = "list"
	ActionRead           Action = "read"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionRegister       Action = "register"
	ActionChangePassword Action = "change_password"
)

// RoleAnonymous marks an unauthenticated caller. It is distinct from
// models.RoleUser, which always means a logged-in account.
const RoleAnonymous models.Role = ""

// Allowed decides whether role may perform action on a resource, where owner
// reports whether the actor owns the target entity. Everything not explicitly
// granted is denied.
func Allowed(role models.Role, resource Resource, action Action, owner bool) bool {
	authenticated := role != RoleAnonymous

	switch resource {
	case ResourceRestaurant:
		switch action {
		case ActionList, ActionRead:
			return true
		case ActionCreate, ActionUpdate, ActionDelete:
			return role.IsStaff()
		}

	case ResourceReview:
		switch action {
		case ActionRead:
			return true
		case ActionList, ActionCreate:
			return authenticated
		case ActionUpdate:
			// Owner-only: staff may remove reviews but not silently rewrite them.
			return owner
		case ActionDelete:
			return owner || role.IsStaff()
		}

	case ResourceUser:
		switch action {
		case ActionRegister:
			return true
		case ActionList:
			return role.IsStaff()
		case ActionRead, ActionUpdate, ActionDelete, ActionChangePassword:
			return owner || role.IsStaff()
		}
	}

	return false
}
