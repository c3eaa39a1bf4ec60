package pinball

import (
	"testing"
	"time"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		skill string
		want  string
	}{
		{"React", "react"},
		{"Node.js", "node"},
		{"Tailwind", "tailwindcss"},
		{"GitHub", "github"},
		{"COBOL", DefaultIconKey},
		{"", DefaultIconKey},
	}
	for _, tt := range tests {
		if got := IconFor(tt.skill); got != tt.want {
			t.Errorf("IconFor(%q) = %q, want %q", tt.skill, got, tt.want)
		}
	}
}

func TestBumperConsume(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := Bumper{Skill: "Docker", Active: true, Lit: true, LitUntil: now.Add(time.Second)}

	if !b.Consume(now) {
		t.Fatal("first Consume returned false")
	}
	if b.Active || b.Lit || b.IconKey != "docker" || !b.DeactivatedAt.Equal(now) {
		t.Errorf("after Consume: %+v", b)
	}

	if b.Consume(now.Add(time.Minute)) {
		t.Error("second Consume returned true")
	}
	if !b.DeactivatedAt.Equal(now) {
		t.Error("second Consume restamped DeactivatedAt")
	}

	b.Light(now.Add(time.Hour))
	if b.Lit {
		t.Error("Light lit an inactive bumper")
	}
}

func TestBumperLightExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := Bumper{Active: true}
	b.Light(now.Add(100 * time.Millisecond))

	b.expireLight(now.Add(50 * time.Millisecond))
	if !b.Lit {
		t.Error("light expired early")
	}
	b.expireLight(now.Add(200 * time.Millisecond))
	if b.Lit {
		t.Error("light did not expire")
	}
}

func TestBumperFadeIn(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := Bumper{DeactivatedAt: at}
	d := 400 * time.Millisecond

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"at hit", at, 0},
		{"halfway", at.Add(200 * time.Millisecond), 0.5},
		{"done", at.Add(time.Second), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.FadeIn(tt.now, d); got != tt.want {
				t.Errorf("FadeIn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIconKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range IconKeys() {
		if seen[k] {
			t.Errorf("duplicate icon key %q", k)
		}
		seen[k] = true
	}
	if !seen[DefaultIconKey] {
		t.Errorf("IconKeys() missing %q", DefaultIconKey)
	}
}
