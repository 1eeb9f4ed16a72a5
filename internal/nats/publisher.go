package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/capitalize-ai/gamebot/internal/model"
)

// SubjectPrefix is the prefix for all GameBot subjects.
const SubjectPrefix = "gamebot"

// TurnSubject returns the subject a turn event is published on.
func TurnSubject(sessionID string, role model.Role) string {
	return fmt.Sprintf("%s.%s.turn.%s", SubjectPrefix, sessionID, role)
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher announces appended turns. Events are fire-and-forget
// notifications; nothing is stored.
type Publisher struct {
	conn conn
	now  func() time.Time
}

// NewPublisher creates a publisher on an open client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{conn: client.Conn(), now: time.Now}
}

// PublishTurn publishes one turn event.
func (p *Publisher) PublishTurn(ctx context.Context, sessionID, owner string, index int, turn model.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(&model.TurnEvent{
		SessionID: sessionID,
		Owner:     owner,
		Index:     index,
		Turn:      turn,
		EmittedAt: p.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal turn event: %w", err)
	}

	msg := nats.NewMsg(TurnSubject(sessionID, turn.Role))
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish turn event: %w", err)
	}
	return nil
}
