package driver

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

const (
	DefaultTickLength = time.Second
)

// Phase orders managers within a tick. Lower phases run first.
type Phase int

const (
	PhaseSimulation Phase = iota
	PhaseUI
)

func (p Phase) String() string {
	switch p {
	case PhaseSimulation:
		return "simulation"
	case PhaseUI:
		return "ui"
	default:
		return "unknown"
	}
}

type Manager interface {
	Tick(context.Context) error
}

type registration struct {
	name    string
	phase   Phase
	manager Manager
}

// SimDriver ticks registered managers on a fixed interval, one phase after
// another. A tick never overlaps the next one.
type SimDriver struct {
	tickLength time.Duration
	managers   []registration
	tick       atomic.Uint64
}

func NewSimDriver(opts ...SimDriverOpt) *SimDriver {
	d := &SimDriver{
		tickLength: DefaultTickLength,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Register adds a manager to a phase. Managers in the same phase run in
// registration order.
func (d *SimDriver) Register(name string, phase Phase, m Manager) {
	r := registration{name: name, phase: phase, manager: m}

	i := len(d.managers)
	for i > 0 && d.managers[i-1].phase > phase {
		i--
	}
	d.managers = append(d.managers, registration{})
	copy(d.managers[i+1:], d.managers[i:])
	d.managers[i] = r
}

func (d *SimDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs every manager once. A toll booth query failure only ends the
// current tick; any other error is returned.
func (d *SimDriver) Tick(ctx context.Context) error {
	tick := d.tick.Add(1)

	for _, r := range d.managers {
		err := r.manager.Tick(ctx)
		if err == nil {
			continue
		}

		var qf *tollbooth.QueryFailure
		if errors.As(err, &qf) {
			slog.WarnContext(ctx, "skipping rest of tick", "tick", tick, "manager", r.name, "phase", r.phase.String(), "error", err)
			return nil
		}
		return err
	}
	return nil
}

// Ticks returns how many ticks have run.
func (d *SimDriver) Ticks() uint64 {
	return d.tick.Load()
}
