package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/capitalize-ai/gamebot/internal/model"
)

type recordingConn struct {
	msgs []*nats.Msg
	err  error
}

func (c *recordingConn) PublishMsg(m *nats.Msg) error {
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, m)
	return nil
}

func TestSubjects(t *testing.T) {
	if got := TurnSubject("abc", model.RoleAssistant); got != "gamebot.abc.turn.assistant" {
		t.Errorf("Unexpected turn subject %q", got)
	}
}

func TestPublishTurn(t *testing.T) {
	conn := &recordingConn{}
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &Publisher{conn: conn, now: func() time.Time { return fixed }}

	turn := model.Turn{Role: model.RoleUser, Content: "/game Portal", CreatedAt: fixed}
	if err := p.PublishTurn(context.Background(), "s1", "u1", 0, turn); err != nil {
		t.Fatalf("PublishTurn() error: %v", err)
	}

	if len(conn.msgs) != 1 {
		t.Fatalf("Expected one message, got %d", len(conn.msgs))
	}
	msg := conn.msgs[0]
	if msg.Subject != "gamebot.s1.turn.user" {
		t.Errorf("Unexpected subject %q", msg.Subject)
	}
	if msg.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Unexpected content type %q", msg.Header.Get("Content-Type"))
	}

	var ev model.TurnEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	if ev.SessionID != "s1" || ev.Owner != "u1" || ev.Turn.Content != "/game Portal" || !ev.EmittedAt.Equal(fixed) {
		t.Errorf("Unexpected event %+v", ev)
	}
}

func TestPublishTurn_Errors(t *testing.T) {
	p := &Publisher{conn: &recordingConn{err: errors.New("no responders")}, now: time.Now}
	if err := p.PublishTurn(context.Background(), "s1", "u1", 0, model.Turn{Role: model.RoleUser}); err == nil {
		t.Fatal("Expected publish error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := &recordingConn{}
	p = &Publisher{conn: conn, now: time.Now}
	if err := p.PublishTurn(ctx, "s1", "u1", 0, model.Turn{Role: model.RoleUser}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(conn.msgs) != 0 {
		t.Error("Expected nothing to be published on a cancelled context")
	}
}
