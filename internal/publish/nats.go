// Package publish pushes rendered exposition text to a NATS subject so other
// processes can pick it up (scrape bridges, archival consumers). Networking
// lives here, at the CLI layer; the promtext core stays in-process only.
package publish

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// headerRenderID carries the render run ID on published messages.
const headerRenderID = "Promtext-Render-Id"

// NATSPublisher publishes render output to a fixed subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the given NATS server.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		return nil, fmt.Errorf("publish subject is required")
	}

	conn, err := nats.Connect(url, nats.Name("promtext"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Info("NATS publisher connected", "url", url, "subject", subject)
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Publish sends one rendered buffer, tagged with its render run ID.
func (p *NATSPublisher) Publish(renderID string, output []byte) error {
	msg := &nats.Msg{
		Subject: p.subject,
		Data:    output,
		Header:  nats.Header{headerRenderID: []string{renderID}},
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish render %s: %w", renderID, err)
	}
	return nil
}

// Close flushes pending messages and drops the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Error("Error draining NATS connection", "error", err)
	}
}
