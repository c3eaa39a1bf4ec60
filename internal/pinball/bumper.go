package pinball

import "time"

// DefaultIconKey is assigned when a bumper's skill has no icon entry.
const DefaultIconKey = "react"

// skillIcons maps skill labels to icon atlas keys.
var skillIcons = map[string]string{
	"React":      "react",
	"Node.js":    "node",
	"Docker":     "docker",
	"JavaScript": "javascript",
	"TypeScript": "typescript",
	"Tailwind":   "tailwindcss",
	"MongoDB":    "mongodb",
	"Jest":       "jest",
	"GitHub":     "github",
	"Express":    "express",
}

// IconFor returns the icon key for a skill label, or DefaultIconKey.
func IconFor(skill string) string {
	if key, ok := skillIcons[skill]; ok {
		return key
	}
	return DefaultIconKey
}

// IconKeys returns every key the simulation can assign, for hosts that
// preload an atlas.
func IconKeys() []string {
	keys := make([]string, 0, len(skillIcons))
	seen := make(map[string]bool, len(skillIcons))
	for _, skill := range []string{"React", "Node.js", "Express", "MongoDB", "TypeScript", "JavaScript", "Tailwind", "Docker", "GitHub", "Jest"} {
		key := skillIcons[skill]
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Consume switches an active bumper off for the rest of the playfield's
// lifetime and assigns its icon. Calling it on an inactive bumper is a no-op.
func (b *Bumper) Consume(now time.Time) bool {
	if !b.Active {
		return false
	}
	b.Active = false
	b.Lit = false
	b.DeactivatedAt = now
	b.IconKey = IconFor(b.Skill)
	return true
}

// Light highlights the bumper until the given time. Nothing in the
// simulation calls it; hosts may.
func (b *Bumper) Light(until time.Time) {
	if !b.Active {
		return
	}
	b.Lit = true
	b.LitUntil = until
}

func (b *Bumper) expireLight(now time.Time) {
	if b.Lit && now.After(b.LitUntil) {
		b.Lit = false
	}
}

// FadeIn returns the icon opacity in [0, 1], ramping over d since deactivation.
func (b Bumper) FadeIn(now time.Time, d time.Duration) float64 {
	if b.Active || b.DeactivatedAt.IsZero() || d <= 0 {
		return 1
	}
	t := float64(now.Sub(b.DeactivatedAt)) / float64(d)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
