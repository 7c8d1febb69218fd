package game

// Spell is an effect cast on a single mobile, usually from a wand.
type Spell interface {
	Name() string
	Cast(target *Mobile, w *World, sc *ScreenChanges) error
}

// HealingSpell heals up to Amount points of damage.
type HealingSpell struct {
	Amount int
	Sound  SoundId
}

func (s *HealingSpell) Name() string { return "healing" }

func (s *HealingSpell) Cast(target *Mobile, _ *World, sc *ScreenChanges) error {
	target.Stats.Health = min(target.Stats.Health+s.Amount, target.Stats.MaxHealth)
	if s.Sound != NoSound {
		sc.RoomPlaySound(target.room, s.Sound)
	}
	return nil
}

// TeleportSpell moves the target to a fixed destination. The sound plays in
// both the starting and the ending room.
type TeleportSpell struct {
	Destination Location
	Sound       SoundId
}

func (s *TeleportSpell) Name() string { return "teleport" }

func (s *TeleportSpell) Cast(target *Mobile, w *World, sc *ScreenChanges) error {
	start := target.room
	if err := target.GoToLocation(s.Destination, w, sc); err != nil {
		return err
	}
	if s.Sound == NoSound {
		return nil
	}
	sc.RoomPlaySound(start, s.Sound)
	if target.room != start {
		sc.RoomPlaySound(target.room, s.Sound)
	}
	return nil
}
