package events

import "context"

// Event types
const (
	EventObjectiveCreated        = "objective_created"
	EventObjectiveStatusChanged  = "objective_status_changed"
	EventObjectivesAutoGenerated = "objectives_auto_generated"
	EventMilestoneUpdated        = "milestone_updated"
)

// StreamObjectives carries confidential objective activity; the WS hub only
// relays it to staff connections.
const StreamObjectives = "events:objectives"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
