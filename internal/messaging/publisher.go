package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

const SubjectNameAssigned = "tollbooth.named"

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type nameAssignedMsg struct {
	EventId string `json:"event_id"`
	Index   uint32 `json:"index"`
	Version uint32 `json:"version"`
	Name    string `json:"name"`
	Tick    uint64 `json:"tick"`
}

// NamePublisher forwards NameAssigned events to the message bus.
type NamePublisher struct {
	pub     Publisher
	subject string
	newId   func() string
}

func NewNamePublisher(pub Publisher) *NamePublisher {
	return &NamePublisher{
		pub:     pub,
		subject: SubjectNameAssigned,
		newId:   uuid.NewString,
	}
}

func (p *NamePublisher) OnNameAssigned(_ context.Context, ev tollbooth.NameAssigned) error {
	data, err := json.Marshal(nameAssignedMsg{
		EventId: p.newId(),
		Index:   ev.ID.Index,
		Version: ev.ID.Version,
		Name:    ev.Name.String(),
		Tick:    ev.Tick,
	})
	if err != nil {
		return fmt.Errorf("marshalling name event: %w", err)
	}

	if err := p.pub.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publishing name event: %w", err)
	}
	return nil
}
