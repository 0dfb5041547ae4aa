package store

import (
	"context"
	"time"

	"github.com/inquora/inquora/internal/profile"
	"github.com/inquora/inquora/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// sessionCache caches session snapshots by uid. Every session mutation
	// invalidates the entry, so a cached read never masks a newer write.
	sessionCache *cache.LRUCache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:       driver,
		profile:      profile,
		sessionCache: cache.New(1000, 10*time.Minute),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateInterviewSession(ctx context.Context, create *InterviewSession) (*InterviewSession, error) {
	session, err := s.driver.CreateInterviewSession(ctx, create)
	if err != nil {
		return nil, err
	}
	s.sessionCache.Set(session.UID, session)
	return session, nil
}

// GetInterviewSession returns a single session or nil when none matches.
func (s *Store) GetInterviewSession(ctx context.Context, find *FindInterviewSession) (*InterviewSession, error) {
	if find.UID != nil && find.ID == nil && find.Status == nil {
		if cached, ok := s.sessionCache.Get(*find.UID); ok {
			return cached.(*InterviewSession), nil
		}
	}

	list, err := s.driver.ListInterviewSessions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	session := list[0]
	s.sessionCache.Set(session.UID, session)
	return session, nil
}

func (s *Store) ListInterviewSessions(ctx context.Context, find *FindInterviewSession) ([]*InterviewSession, error) {
	return s.driver.ListInterviewSessions(ctx, find)
}

func (s *Store) UpdateInterviewSession(ctx context.Context, update *UpdateInterviewSession) (*InterviewSession, error) {
	session, err := s.driver.UpdateInterviewSession(ctx, update)
	if err != nil {
		return nil, err
	}
	s.sessionCache.Set(session.UID, session)
	return session, nil
}

func (s *Store) IncrementSessionCost(ctx context.Context, sessionID int32, tokens int64, cost float64) error {
	if err := s.driver.IncrementSessionCost(ctx, sessionID, tokens, cost); err != nil {
		return err
	}
	// The cached snapshot carries a stale accumulator; drop it rather than
	// patching it in place.
	s.invalidateSessionByID(ctx, sessionID)
	return nil
}

func (s *Store) CreateInterviewMessage(ctx context.Context, create *InterviewMessage) (*InterviewMessage, error) {
	return s.driver.CreateInterviewMessage(ctx, create)
}

func (s *Store) ListInterviewMessages(ctx context.Context, find *FindInterviewMessage) ([]*InterviewMessage, error) {
	return s.driver.ListInterviewMessages(ctx, find)
}

func (s *Store) invalidateSessionByID(ctx context.Context, sessionID int32) {
	list, err := s.driver.ListInterviewSessions(ctx, &FindInterviewSession{ID: &sessionID})
	if err != nil || len(list) == 0 {
		s.sessionCache.Clear()
		return
	}
	s.sessionCache.Set(list[0].UID, list[0])
}
