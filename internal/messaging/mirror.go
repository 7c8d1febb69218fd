package messaging

import "fmt"

// SubjectPrefix is prepended to a player id to form its mirror subject.
const SubjectPrefix = "exploratron.player."

// PlayerSubject returns the subject carrying copies of a player's datagrams.
func PlayerSubject(playerId string) string {
	return fmt.Sprintf("%s%s", SubjectPrefix, playerId)
}

// Publisher sends data on a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerMirror republishes every datagram sent to a player on that
// player's subject so spectators can follow along.
type PlayerMirror struct {
	pub Publisher
}

func NewPlayerMirror(pub Publisher) *PlayerMirror {
	return &PlayerMirror{pub: pub}
}

func (m *PlayerMirror) Mirror(playerId string, data []byte) error {
	return m.pub.Publish(PlayerSubject(playerId), data)
}
