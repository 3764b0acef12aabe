package integration_test

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/cinetick/cinetick/internal/app"
	"github.com/cinetick/cinetick/internal/event"
	"github.com/cinetick/cinetick/internal/mailer"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
	Events *capturePublisher
}

// capturePublisher records order.created events instead of talking to a
// broker, so scenarios can assert on what would have been published.
type capturePublisher struct {
	mu     sync.Mutex
	events []event.OrderCreated
}

func (p *capturePublisher) PublishOrderCreated(_ context.Context, e event.OrderCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Published() []event.OrderCreated {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]event.OrderCreated, len(p.events))
	copy(events, p.events)
	return events
}

func (p *capturePublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mockMailer := mailer.NewMockMailer()
	events := &capturePublisher{}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.NewApplication(cfg, logger, db, redisClient, mockMailer, events)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
		Events: events,
	}, nil
}
