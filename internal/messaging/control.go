package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/game"
)

const (
	SubjectSpawn   = "tollbooth.spawn"
	SubjectDestroy = "tollbooth.destroy"
	SubjectSelect  = "tollbooth.select"
	SubjectTrigger = "tollbooth.trigger"
)

// Subscriber provides the ability to subscribe to message subjects once the
// bus is ready.
type Subscriber interface {
	Ready() <-chan struct{}
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Selector is the UI selection tool.
type Selector interface {
	Select(id entity.Identity)
	Clear()
}

// Triggerer invokes UI triggers by their "group.name" key.
type Triggerer interface {
	Trigger(key string) error
}

type spawnRequest struct {
	Owner    string `json:"owner,omitempty"`
	NewOwner bool   `json:"new_owner,omitempty"`
}

type targetRequest struct {
	Id string `json:"id"`
}

type triggerRequest struct {
	Key string `json:"key"`
}

// ControlHandler turns bus requests into world commands. World mutations are
// queued and applied on the simulation thread.
type ControlHandler struct {
	sub      Subscriber
	queue    *game.CommandQueue
	selector Selector
	triggers Triggerer
}

func NewControlHandler(sub Subscriber, queue *game.CommandQueue, selector Selector, triggers Triggerer) *ControlHandler {
	return &ControlHandler{sub: sub, queue: queue, selector: selector, triggers: triggers}
}

func (h *ControlHandler) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-h.sub.Ready():
	}

	handlers := map[string]func([]byte) error{
		SubjectSpawn:   h.handleSpawn,
		SubjectDestroy: h.handleDestroy,
		SubjectSelect:  h.handleSelect,
		SubjectTrigger: h.handleTrigger,
	}

	var unsubs []func()
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	for subject, fn := range handlers {
		unsub, err := h.sub.Subscribe(subject, func(data []byte) {
			if err := fn(data); err != nil {
				slog.WarnContext(ctx, "control request rejected", "subject", subject, "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		unsubs = append(unsubs, unsub)
	}

	slog.InfoContext(ctx, "control handler listening")
	<-ctx.Done()
	return nil
}

func (h *ControlHandler) handleSpawn(data []byte) error {
	var req spawnRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("decoding spawn request: %w", err)
		}
	}

	owner := entity.Null
	if req.Owner != "" {
		id, err := entity.ParseIdentity(req.Owner)
		if err != nil {
			return err
		}
		owner = id
	}

	h.queue.Enqueue(game.Command{Name: "spawn", Apply: func(w *game.World) error {
		o := owner
		if req.NewOwner {
			o = w.Spawn()
		}
		_, err := w.SpawnTollBooth(o)
		return err
	}})
	return nil
}

func (h *ControlHandler) handleDestroy(data []byte) error {
	id, err := parseTarget(data)
	if err != nil {
		return err
	}
	if id.IsNull() {
		return fmt.Errorf("destroy requires an id")
	}

	h.queue.Enqueue(game.Command{Name: "destroy", Apply: func(w *game.World) error {
		return w.Destroy(id)
	}})
	return nil
}

func (h *ControlHandler) handleSelect(data []byte) error {
	id, err := parseTarget(data)
	if err != nil {
		return err
	}

	if id.IsNull() {
		h.selector.Clear()
		return nil
	}
	h.selector.Select(id)
	return nil
}

// handleTrigger queues the trigger so it runs between ticks alongside the
// panel it belongs to.
func (h *ControlHandler) handleTrigger(data []byte) error {
	var req triggerRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decoding trigger request: %w", err)
	}
	if req.Key == "" {
		return fmt.Errorf("trigger requires a key")
	}

	h.queue.Enqueue(game.Command{Name: "trigger " + req.Key, Apply: func(*game.World) error {
		return h.triggers.Trigger(req.Key)
	}})
	return nil
}

func parseTarget(data []byte) (entity.Identity, error) {
	var req targetRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return entity.Null, fmt.Errorf("decoding request: %w", err)
		}
	}
	if req.Id == "" {
		return entity.Null, nil
	}
	return entity.ParseIdentity(req.Id)
}
