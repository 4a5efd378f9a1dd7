package auth

import (
	"fmt"

	"github.com/isdelr/chroniclex-be/internal/apperr"
)

// Action is an operation on a blog resource.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRetrieve:
		return "retrieve"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionPartialUpdate:
		return "partial_update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ActionClass groups actions that share a permission requirement.
type ActionClass int

const (
	ClassRead ActionClass = iota
	ClassCreate
	ClassMutate
)

// Class returns the permission class of an action. Unknown actions are
// treated as mutations, the most restrictive class.
func Class(a Action) ActionClass {
	switch a {
	case ActionList, ActionRetrieve:
		return ClassRead
	case ActionCreate:
		return ClassCreate
	default:
		return ClassMutate
	}
}

// Permit decides whether actor may perform action on a resource authored by authorID.
// authorID is ignored for read and create.
func Permit(actor *Actor, action Action, authorID string) bool {
	return Authorize(actor, action, authorID) == nil
}

// Authorize is Permit with the reason for a denial: ErrAuthentication when the
// actor is anonymous, ErrPermission when it is authenticated but not the author.
func Authorize(actor *Actor, action Action, authorID string) error {
	switch Class(action) {
	case ClassRead:
		return nil
	case ClassCreate:
		if !actor.Authenticated() {
			return fmt.Errorf("%w: authentication credentials were not provided", apperr.ErrAuthentication)
		}
		return nil
	default:
		if !actor.Authenticated() {
			return fmt.Errorf("%w: authentication credentials were not provided", apperr.ErrAuthentication)
		}
		if actor.ID != authorID {
			return fmt.Errorf("%w: only the author may %s this blog", apperr.ErrPermission, action)
		}
		return nil
	}
}
