// Package notify carries rendered customer notifications to their
// delivery transport. The dispatcher only decides and composes; actual
// delivery (email provider, messaging gateway) happens downstream of the
// sink, outside this service.
package notify

import "context"

// Sink sends one rendered message to one destination over one channel.
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, channel, destination, message string) error
}
