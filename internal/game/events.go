package game

// KeyCode is a logical key a player can press.
type KeyCode int

const (
	KeyGoUp KeyCode = iota + 1
	KeyGoDown
	KeyGoLeft
	KeyGoRight
	KeyPickUp
	KeyCast
	KeyToggleInventory
	KeyMoveUIUp
	KeyMoveUIDown
	KeyMoveUILeft
	KeyMoveUIRight
	KeyUIAction
)

// Valid reports whether k is a known key code.
func (k KeyCode) Valid() bool {
	return k >= KeyGoUp && k <= KeyUIAction
}

// IsAction reports whether pressing k takes the player's turn.
func (k KeyCode) IsAction() bool {
	return k >= KeyGoUp && k <= KeyCast
}

// Event is input for the world loop. The set of events is closed.
type Event interface {
	event()
}

// QuitGame ends the session.
type QuitGame struct{}

// PlayerJoined attaches a client to a player, creating the player from the
// catalog if it is not already in the world.
type PlayerJoined struct {
	PlayerId string
	Client   Client
}

// ClientLeft detaches a client from its player.
type ClientLeft struct {
	PlayerId string
	Client   Client
}

type KeyPressed struct {
	PlayerId string
	Key      KeyCode
}

// RequestInventory asks for the player's inventory to be sent to Client.
type RequestInventory struct {
	PlayerId string
	Client   Client
}

type DropItem struct {
	PlayerId string
	ItemId   string
}

type EquipItem struct {
	PlayerId string
	Slot     EquipmentType
	ItemId   string
}

func (QuitGame) event()         {}
func (PlayerJoined) event()     {}
func (ClientLeft) event()       {}
func (KeyPressed) event()       {}
func (RequestInventory) event() {}
func (DropItem) event()         {}
func (EquipItem) event()        {}

// EventList sorts a tick's input into non-action events, which apply at
// once, and action events, of which only the first per player is kept.
type EventList struct {
	actions    map[string]KeyPressed
	nonActions []Event
}

func NewEventList() *EventList {
	return &EventList{actions: map[string]KeyPressed{}}
}

func (l *EventList) Add(e Event) {
	if kp, ok := e.(KeyPressed); ok && kp.Key.IsAction() {
		if _, exists := l.actions[kp.PlayerId]; !exists {
			l.actions[kp.PlayerId] = kp
		}
		return
	}
	l.nonActions = append(l.nonActions, e)
}

// NonActionEvents returns the non-action events in arrival order.
func (l *EventList) NonActionEvents() []Event {
	return l.nonActions
}

// FirstActionEvent returns the first action event for playerId, if any.
func (l *EventList) FirstActionEvent(playerId string) (KeyPressed, bool) {
	kp, ok := l.actions[playerId]
	return kp, ok
}

func (l *EventList) Len() int {
	return len(l.actions) + len(l.nonActions)
}

func (l *EventList) Clear() {
	clear(l.actions)
	l.nonActions = nil
}
