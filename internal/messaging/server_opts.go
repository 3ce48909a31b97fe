package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the embedded server to
// accept connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithConnectTimeout bounds the dial of the internal client that publishes
// toll booth events.
func WithConnectTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.connectTimeout = d
	}
}

// WithClientName names the internal client as seen by bus monitoring.
func WithClientName(name string) NatsServerOpt {
	return func(n *NatsServer) {
		n.clientName = name
	}
}

func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort sets the client port. -1 picks a free port.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}
