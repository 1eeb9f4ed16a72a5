// Package service routes user messages to the game catalog or the chat
// backend and keeps session transcripts.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/command"
	"github.com/capitalize-ai/gamebot/internal/format"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/session"
	"github.com/capitalize-ai/gamebot/pkg/logger"
	"github.com/capitalize-ai/gamebot/pkg/metrics"
)

// Catalog is the game-metadata lookup the orchestrator depends on.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.Summary, error)
	GetDetail(ctx context.Context, id int) (*catalog.Detail, error)
	GetMedia(ctx context.Context, id int, count int) ([]catalog.MediaRef, error)
}

// TurnPublisher announces appended turns.
type TurnPublisher interface {
	PublishTurn(ctx context.Context, sessionID, owner string, index int, turn model.Turn) error
}

// Options tunes orchestrator behavior.
type Options struct {
	// ChatConfigured is false when no chat backend credential exists.
	ChatConfigured bool
	// SearchLimit bounds catalog search results. Zero uses the catalog default.
	SearchLimit int
	// ScreenshotCount adds screenshots to detail cards when positive.
	ScreenshotCount int
}

var examplePrompts = []string{
	"What are the best RPGs of all time?",
	"Recommend games similar to Skyrim",
	"What's the history of the Final Fantasy series?",
	"Which games have the best storylines?",
	"/game Elden Ring",
}

// Orchestrator handles one user message at a time per session.
type Orchestrator struct {
	catalog   Catalog
	publisher TurnPublisher
	logger    *logger.Logger
	opts      Options
}

// NewOrchestrator creates an orchestrator. publisher may be nil.
func NewOrchestrator(cat Catalog, publisher TurnPublisher, log *logger.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{
		catalog:   cat,
		publisher: publisher,
		logger:    log,
		opts:      opts,
	}
}

// HandleMessage processes one raw user message and returns the turns it
// appended. Failures become assistant turns; nothing is returned as an
// error.
func (o *Orchestrator) HandleMessage(ctx context.Context, sess *session.Session, raw string) []model.Turn {
	sess.Lock()
	defer sess.Unlock()

	log := o.logger.WithSession(sess.ID(), sess.Owner())

	if !o.opts.ChatConfigured {
		log.Debug("chat backend not configured")
		return []model.Turn{o.append(ctx, sess, model.RoleAssistant, format.ConfigNotice())}
	}

	turns := []model.Turn{o.append(ctx, sess, model.RoleUser, raw)}

	intent := command.Classify(raw)
	metrics.IntentsTotal.WithLabelValues(intent.Kind.String()).Inc()

	var reply string
	switch intent.Kind {
	case command.KindCatalogLookup:
		reply = o.lookup(ctx, log, intent.Query)
	default:
		reply = o.chat(ctx, log, sess, intent.Text)
	}

	return append(turns, o.append(ctx, sess, model.RoleAssistant, reply))
}

func (o *Orchestrator) lookup(ctx context.Context, log *logger.Logger, query string) string {
	results, err := o.catalog.Search(ctx, query, o.opts.SearchLimit)
	if err != nil {
		log.Warn("game search failed", zap.String("query", query), zap.Error(err))
		return format.LookupFailure(format.CatalogReason(err))
	}
	if len(results) == 0 {
		return format.NoResults(query)
	}

	top := results[0]
	detail, err := o.detail(ctx, log, top.ID)
	if err != nil {
		log.Warn("game detail failed", zap.Int("game_id", top.ID), zap.Error(err))
		return format.DetailFailure(format.CatalogReason(err))
	}
	detail.FillFrom(top)
	return format.Detail(detail)
}

// detail fetches one game and, when enabled, its screenshots. A media
// failure leaves the card without screenshots.
func (o *Orchestrator) detail(ctx context.Context, log *logger.Logger, id int) (*catalog.Detail, error) {
	detail, err := o.catalog.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.opts.ScreenshotCount > 0 {
		media, err := o.catalog.GetMedia(ctx, id, o.opts.ScreenshotCount)
		if err != nil {
			log.Debug("game screenshots unavailable", zap.Int("game_id", id), zap.Error(err))
		} else {
			detail.Screenshots = media
		}
	}
	return detail, nil
}

func (o *Orchestrator) chat(ctx context.Context, log *logger.Logger, sess *session.Session, text string) string {
	if sess.State() != session.StateActive {
		return format.BackendUnavailable()
	}

	reply, err := sess.SendToBackend(ctx, text)
	if err != nil {
		log.Error("chat backend failed", zap.String("provider", sess.Provider()), zap.Error(err))

		var chatErr *session.ChatError
		if errors.As(err, &chatErr) {
			return format.BackendFailure(chatErr.Reason())
		}
		return format.BackendFailure(err.Error())
	}
	return reply
}

// QuickSearch runs a catalog search and caches the hits on the session.
// The transcript is not touched.
func (o *Orchestrator) QuickSearch(ctx context.Context, sess *session.Session, query string) ([]catalog.Summary, error) {
	sess.Lock()
	defer sess.Unlock()

	results, err := o.catalog.Search(ctx, query, o.opts.SearchLimit)
	if err != nil {
		return nil, err
	}
	sess.SetLastResults(results)
	return results, nil
}

// ShowDetails appends the detail card for one game, filling gaps from the
// cached quick-search hit. Nothing is appended on failure.
func (o *Orchestrator) ShowDetails(ctx context.Context, sess *session.Session, id int) (model.Turn, error) {
	sess.Lock()
	defer sess.Unlock()

	log := o.logger.WithSession(sess.ID(), sess.Owner())

	detail, err := o.detail(ctx, log, id)
	if err != nil {
		return model.Turn{}, err
	}
	for _, hit := range sess.LastResults() {
		if hit.ID == id {
			detail.FillFrom(hit)
			break
		}
	}
	return o.append(ctx, sess, model.RoleAssistant, format.Detail(detail)), nil
}

// ExamplePrompts returns suggested questions.
func (o *Orchestrator) ExamplePrompts() []string {
	return append([]string(nil), examplePrompts...)
}

func (o *Orchestrator) append(ctx context.Context, sess *session.Session, role model.Role, content string) model.Turn {
	turn := sess.Append(role, content)
	o.publish(ctx, sess, sess.Len()-1, turn)
	return turn
}

func (o *Orchestrator) publish(ctx context.Context, sess *session.Session, index int, turn model.Turn) {
	if o.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := o.publisher.PublishTurn(ctx, sess.ID(), sess.Owner(), index, turn); err != nil {
		o.logger.Warn("failed to publish turn event",
			zap.String("session_id", sess.ID()),
			zap.Int("index", index),
			zap.Error(err),
		)
	}
}
