package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const SubjectBindings = "tollbooth.ui"

// Flusher hands over UI binding values changed since the last call.
type Flusher interface {
	Flush() map[string]any
}

// BindingsPublisher sends changed UI bindings to the bus once per tick.
type BindingsPublisher struct {
	pub     Publisher
	sources []Flusher
}

func NewBindingsPublisher(pub Publisher, sources ...Flusher) *BindingsPublisher {
	return &BindingsPublisher{pub: pub, sources: sources}
}

func (p *BindingsPublisher) Tick(ctx context.Context) error {
	changed := map[string]any{}
	for _, s := range p.sources {
		for k, v := range s.Flush() {
			changed[k] = v
		}
	}
	if len(changed) == 0 {
		return nil
	}

	data, err := json.Marshal(changed)
	if err != nil {
		return fmt.Errorf("marshalling bindings: %w", err)
	}

	// Changes are dropped if the bus is down; the next change resends its key.
	if err := p.pub.Publish(SubjectBindings, data); err != nil {
		slog.WarnContext(ctx, "publishing ui bindings", "count", len(changed), "error", err)
	}
	return nil
}
