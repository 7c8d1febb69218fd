package game

import "errors"

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerExists      = errors.New("player already exists")
	ErrUnknownPlayer     = errors.New("no catalog entry for player")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomExists        = errors.New("room already exists")
	ErrThingNotInCell    = errors.New("thing not in cell")
	ErrRoomSwitchPending = errors.New("player already switched rooms this tick")
	ErrItemNotCarried    = errors.New("item not carried")
	ErrNotWieldable      = errors.New("item cannot be wielded in that slot")
	ErrClientNotAttached = errors.New("client not attached to player")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrGameOver          = errors.New("game over")
)
