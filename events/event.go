package events

import (
	"fmt"

	"github.com/plus3/spacecourier/ecs"
)

// Kind tags an event so the bus can route it to the listeners subscribed
// for that kind.
type Kind uint8

const (
	KindPlayerDeath Kind = iota + 1
	KindHighscoreChanged
	KindShieldActivated
	KindShieldExpired
	KindAssetsReady
)

var kindNames = map[Kind]string{
	KindPlayerDeath:      "player_death",
	KindHighscoreChanged: "highscore_changed",
	KindShieldActivated:  "shield_activated",
	KindShieldExpired:    "shield_expired",
	KindAssetsReady:      "assets_ready",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a discrete game occurrence. Events are plain values: every
// dispatch carries its own copy of the payload.
type Event interface {
	Kind() Kind
}

// PlayerDeathEvent is dispatched once when a player entity is destroyed.
type PlayerDeathEvent struct {
	Score int
}

func (PlayerDeathEvent) Kind() Kind { return KindPlayerDeath }

// HighscoreChangedEvent is dispatched when a run beats the best score.
type HighscoreChangedEvent struct {
	NewHighscore int
}

func (HighscoreChangedEvent) Kind() Kind { return KindHighscoreChanged }

type ShieldActivatedEvent struct {
	Entity ecs.EntityId
}

func (ShieldActivatedEvent) Kind() Kind { return KindShieldActivated }

type ShieldExpiredEvent struct {
	Entity ecs.EntityId
}

func (ShieldExpiredEvent) Kind() Kind { return KindShieldExpired }

// AssetsReadyEvent marks the end of the loading state.
type AssetsReadyEvent struct{}

func (AssetsReadyEvent) Kind() Kind { return KindAssetsReady }
