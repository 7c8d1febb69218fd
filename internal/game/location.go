package game

import "fmt"

// Millis is game time in milliseconds since the world started.
type Millis int64

// SoundId identifies a sound effect in the client's sound library.
type SoundId int

// NoSound marks a thing that makes no sound.
const NoSound SoundId = -1

// Point is an (x,y) coordinate within a room.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by (dx,dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Location addresses a cell anywhere in the world.
type Location struct {
	RoomNumber  int
	Coordinates Point
}

func (l Location) String() string {
	return fmt.Sprintf("room %d %s", l.RoomNumber, l.Coordinates)
}
