package game

import (
	"log/slog"

	"github.com/pixil98/go-exploratron/internal/text"
)

var (
	tmplTrap        = text.Compile("trap", "You stepped on a trap and took {{ .Damage }} damage.")
	tmplYouHit      = text.Compile("you-hit", "You hit the {{ .Target | lower }} for {{ .Damage }}.")
	tmplHitsYou     = text.Compile("hits-you", "{{ .Attacker | title }} hits you for {{ .Damage }}.")
	tmplJoined      = text.Compile("joined", "{{ .Name }} has entered the world.")
	tmplDied        = text.Compile("died", "{{ .Name | title }} dies.")
	tmplPickedUp    = text.Compile("picked-up", "You pick up the {{ .Item | lower }}.")
	tmplDropped     = text.Compile("dropped", "You drop the {{ .Item | lower }}.")
	tmplWielded     = text.Compile("wielded", "You are now using the {{ .Item | lower }}.")
	tmplNoWand      = text.Compile("no-wand", "You have no wand to cast with.")
	tmplNoMana      = text.Compile("no-mana", "You need {{ .Cost }} mana to use the {{ .Item | lower }}.")
	tmplCastSpell   = text.Compile("cast", "You cast {{ .Spell }}.")
	tmplNothingHere = text.Compile("nothing-here", "There is nothing here to pick up.")
)

// render expands a message template. Templates are fixed at compile time so
// a failure is logged and yields an empty message.
func render(t *text.Template, data map[string]any) string {
	s, err := t.Render(data)
	if err != nil {
		slog.Error("rendering message", "template", t.Name(), "error", err)
		return ""
	}
	return s
}

// ValidateSignText reports whether a sign's text renders for any reader.
func ValidateSignText(s string) error {
	_, err := readSign(s, &Mobile{})
	return err
}

// readSign expands a sign for the mobile standing on it. Signs may refer to
// the reader's .Name, .Health and .MaxHealth.
func readSign(s string, reader *Mobile) (string, error) {
	return text.Expand("sign", s, map[string]any{
		"Name":      reader.Name,
		"Health":    reader.Stats.Health,
		"MaxHealth": reader.Stats.MaxHealth,
	})
}
