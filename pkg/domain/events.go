package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLoad    EventType = "load"
	EventVerdict EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LoadEvent is emitted after a definition was parsed, successfully or not.
type LoadEvent struct {
	EventBase
	Name   string `json:"name"`
	States int    `json:"states"`
	Rules  int    `json:"rules"`
	Err    error  `json:"-"`
}

// VerdictEvent is emitted once per evaluated word occurrence.
type VerdictEvent struct {
	EventBase
	Result   Result        `json:"result"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks may be called concurrently when evaluation runs on several workers.
type LifecycleHooks struct {
	OnLoad    func(context.Context, *LoadEvent)
	OnVerdict func(context.Context, *VerdictEvent)
}
