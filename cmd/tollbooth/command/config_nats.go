package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/messaging"
)

// NatsConfig configures the embedded bus that carries name events, UI
// bindings and host control requests.
type NatsConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	StartTimeout   string `json:"start_timeout"`
	ConnectTimeout string `json:"connect_timeout"`
	ClientName     string `json:"client_name"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	for field, value := range map[string]string{
		"start_timeout":   n.StartTimeout,
		"connect_timeout": n.ConnectTimeout,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			el.Add(fmt.Errorf("nats: parsing %s: %w", field, err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("nats: %s must be positive", field))
		}
	}

	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats: port %d out of range", n.Port))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt

	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.ConnectTimeout != "" {
		d, err := time.ParseDuration(n.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing connect_timeout: %w", err)
		}
		opts = append(opts, messaging.WithConnectTimeout(d))
	}
	if n.ClientName != "" {
		opts = append(opts, messaging.WithClientName(n.ClientName))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	return messaging.NewNatsServer(opts...)
}
