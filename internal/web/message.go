package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/pinball/internal/pinball"
)

// ErrUnknownMessage is returned by decodeMessage for an unrecognised type.
var ErrUnknownMessage = errors.New("unknown message type")

// Inbound message types.
const (
	msgInput      = "input"
	msgLaunch     = "launch"
	msgReset      = "reset"
	msgVisibility = "visibility"
)

// clientMessage is any message a page sends.
type clientMessage struct {
	Type   string `json:"type"`
	Left   bool   `json:"left"`
	Right  bool   `json:"right"`
	Nudge  bool   `json:"nudge"`
	Launch bool   `json:"launch"`
	Full   *bool  `json:"full,omitempty"`   // reset; defaults to true
	Active *bool  `json:"active,omitempty"` // visibility
}

// decodeMessage parses and validates one inbound message.
func decodeMessage(data []byte) (clientMessage, error) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return clientMessage{}, fmt.Errorf("decode message: %w", err)
	}
	switch msg.Type {
	case msgInput, msgLaunch, msgReset:
	case msgVisibility:
		if msg.Active == nil {
			return clientMessage{}, fmt.Errorf("visibility message without active")
		}
	default:
		return clientMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return msg, nil
}

// raw returns the held-key state of an input message.
func (m clientMessage) raw() pinball.RawInput {
	return pinball.RawInput{Left: m.Left, Right: m.Right, Nudge: m.Nudge, Launch: m.Launch}
}

// fullReset reports whether a reset message restores the bumpers.
func (m clientMessage) fullReset() bool {
	return m.Full == nil || *m.Full
}

// layoutMessage is sent once on connect.
type layoutMessage struct {
	Type   string         `json:"type"`
	Layout pinball.Layout `json:"layout"`
}

// wireBumper is a bumper as the page draws it.
type wireBumper struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
	Skill  string  `json:"skill"`
	Active bool    `json:"active"`
	Lit    bool    `json:"lit"`
	Icon   string  `json:"icon,omitempty"`
	Fade   float64 `json:"fade"`
}

// wireFlipper is a flipper as the page draws it.
type wireFlipper struct {
	Pivot     pinball.Vec2 `json:"pivot"`
	Tip       pinball.Vec2 `json:"tip"`
	Thickness float64      `json:"thickness"`
}

// frameMessage carries the moving parts of a snapshot.
type frameMessage struct {
	Type     string         `json:"type"`
	Tick     uint64         `json:"tick"`
	Ball     pinball.Ball   `json:"ball"`
	Flippers [2]wireFlipper `json:"flippers"`
	Bumpers  []wireBumper   `json:"bumpers"`
	Drained  bool           `json:"drained"`
	Active   bool           `json:"active"`
	Players  int            `json:"players"`
}

func newFrame(snap *pinball.Snapshot, players int, now time.Time, fade time.Duration) frameMessage {
	f := frameMessage{
		Type:    "frame",
		Tick:    snap.Tick,
		Ball:    snap.Ball,
		Bumpers: make([]wireBumper, len(snap.Bumpers)),
		Drained: snap.Drained,
		Active:  snap.Active,
		Players: players,
	}
	for i, fl := range snap.Flippers {
		f.Flippers[i] = wireFlipper{Pivot: fl.Pivot, Tip: fl.End, Thickness: fl.Thickness}
	}
	for i, b := range snap.Bumpers {
		f.Bumpers[i] = wireBumper{
			X:      b.Pos.X,
			Y:      b.Pos.Y,
			R:      b.Radius,
			Skill:  b.Skill,
			Active: b.Active,
			Lit:    b.Lit,
			Icon:   b.IconKey,
			Fade:   b.FadeIn(now, fade),
		}
	}
	return f
}

// wireEvent is a tick event as the page sees it.
type wireEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Side  string `json:"side,omitempty"`
	Skill string `json:"skill,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// eventsMessage forwards a tick's events.
type eventsMessage struct {
	Type   string      `json:"type"`
	Events []wireEvent `json:"events"`
}

func newEvents(res pinball.TickResult) eventsMessage {
	m := eventsMessage{Type: "events", Events: make([]wireEvent, len(res.Events))}
	for i, e := range res.Events {
		m.Events[i] = wireEvent{
			Type:  e.Type.String(),
			Index: e.Index,
			Side:  string(e.Side),
			Skill: e.Skill,
			Icon:  e.IconKey,
		}
	}
	return m
}

// typeMessage is a message with no payload, e.g. {"type":"drained"}.
type typeMessage struct {
	Type string `json:"type"`
}
