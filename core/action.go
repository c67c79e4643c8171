package core

import "strings"

// Action is a gameplay request posted by a client
type Action int

const (
	ActionAuthenticate Action = iota + 1
	ActionHit
	ActionStand
)

var actionNames = map[string]Action{
	"authenticate": ActionAuthenticate,
	"auth":         ActionAuthenticate,
	"hit":          ActionHit,
	"stand":        ActionStand,
}

// ParseAction maps a wire action name to an Action
func ParseAction(name string) (Action, error) {
	action, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrInvalidAction
	}
	return action, nil
}

// RequiresCredential reports whether the action needs a bearer credential
func (a Action) RequiresCredential() bool {
	return a != ActionAuthenticate
}

func (a Action) String() string {
	switch a {
	case ActionAuthenticate:
		return "authenticate"
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	default:
		return "unknown"
	}
}
