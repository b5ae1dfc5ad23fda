package domain

import "time"

// Level names one construction level of the flat builder.
type Level string

const (
	LevelRoot       Level = "root"
	LevelDimension  Level = "dimension"
	LevelInstance   Level = "instance"
	LevelExperiment Level = "experiment"
	LevelRunSet     Level = "run_set"
	LevelRun        Level = "run"
)

// LevelEvent reports that a level context was opened or closed.
type LevelEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	// Name is the display name recorded for the context, if any.
	Name string `json:"name,omitempty"`
	// Err is set when the close attempt failed; the context is discarded regardless.
	Err error `json:"-"`
}

// ErrorEvent reports an error raised by the builder.
type ErrorEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Kind      string    `json:"kind"`
	Err       error     `json:"-"`
}

// BuilderHooks defines callbacks for builder observability.
type BuilderHooks struct {
	OnOpen  func(*LevelEvent)
	OnClose func(*LevelEvent)
	OnError func(*ErrorEvent)
}
