package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// InterviewSession model related methods.
	CreateInterviewSession(ctx context.Context, create *InterviewSession) (*InterviewSession, error)
	ListInterviewSessions(ctx context.Context, find *FindInterviewSession) ([]*InterviewSession, error)
	UpdateInterviewSession(ctx context.Context, update *UpdateInterviewSession) (*InterviewSession, error)

	// IncrementSessionCost adds the given token and USD amounts to the
	// session's cost accumulator. Amounts must be non-negative; the update
	// is a single atomic row write.
	IncrementSessionCost(ctx context.Context, sessionID int32, tokens int64, cost float64) error

	// InterviewMessage model related methods.
	CreateInterviewMessage(ctx context.Context, create *InterviewMessage) (*InterviewMessage, error)
	ListInterviewMessages(ctx context.Context, find *FindInterviewMessage) ([]*InterviewMessage, error)
}
