package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-tollbooth/internal/driver"
	"github.com/pixil98/go-tollbooth/internal/game"
	"github.com/pixil98/go-tollbooth/internal/messaging"
	"github.com/pixil98/go-tollbooth/internal/ui"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	world := game.NewWorld()
	queue := game.NewCommandQueue(world)
	simDriver := driver.NewSimDriver(driver.WithTickLength(cfg.tickLength()))

	workers := service.WorkerList{}

	// Restore the saved scene before anything ticks
	keeper, err := cfg.Storage.buildSceneKeeper(world, simDriver)
	if err != nil {
		return nil, fmt.Errorf("creating scene keeper: %w", err)
	}
	if keeper != nil {
		if err := keeper.Restore(context.Background()); err != nil {
			return nil, fmt.Errorf("restoring scene: %w", err)
		}
		workers["scene"] = keeper
	}

	catalog, err := cfg.Storage.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	generator, err := cfg.Engine.buildGenerator(catalog)
	if err != nil {
		return nil, fmt.Errorf("creating name generator: %w", err)
	}

	engine := cfg.Engine.buildEngine(world, generator)

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	workers["nats"] = natsServer
	engine.Subscribe("nats", messaging.NewNamePublisher(natsServer))

	selection := &ui.Selection{}
	panel, err := cfg.UI.buildInfoPanel(selection, world, engine)
	if err != nil {
		return nil, fmt.Errorf("creating info panel: %w", err)
	}

	// Opened last so no later failure leaves the database open
	nameLedger, err := cfg.Storage.buildLedger()
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if nameLedger != nil {
		engine.Subscribe("ledger", nameLedger)
		workers["ledger"] = nameLedger
	}

	workers["control"] = messaging.NewControlHandler(natsServer, queue, selection, panel.Bindings())

	simDriver.Register("commands", driver.PhaseSimulation, queue)
	simDriver.Register("tollbooth", driver.PhaseSimulation, engine)
	simDriver.Register("panel", driver.PhaseUI, panel)
	simDriver.Register("bindings", driver.PhaseUI, messaging.NewBindingsPublisher(natsServer, panel.Bindings()))
	workers["driver"] = simDriver

	return workers, nil
}
