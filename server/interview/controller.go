package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/inquora/inquora/internal/profile"
	"github.com/inquora/inquora/plugin/llm"
	"github.com/inquora/inquora/server/finops"
	apperrors "github.com/inquora/inquora/server/internal/errors"
	"github.com/inquora/inquora/server/internal/observability"
	"github.com/inquora/inquora/store"
)

// SessionStore is the slice of the store the controller depends on.
type SessionStore interface {
	CreateInterviewSession(ctx context.Context, create *store.InterviewSession) (*store.InterviewSession, error)
	GetInterviewSession(ctx context.Context, find *store.FindInterviewSession) (*store.InterviewSession, error)
	UpdateInterviewSession(ctx context.Context, update *store.UpdateInterviewSession) (*store.InterviewSession, error)
	IncrementSessionCost(ctx context.Context, sessionID int32, tokens int64, cost float64) error
	CreateInterviewMessage(ctx context.Context, create *store.InterviewMessage) (*store.InterviewMessage, error)
	ListInterviewMessages(ctx context.Context, find *store.FindInterviewMessage) ([]*store.InterviewMessage, error)
}

// StartRequest starts an interview on a free topic or for a known role.
// Exactly one of Topic or Role must be set.
type StartRequest struct {
	Topic string
	Role  string
}

// MessageRequest is one conversational turn.
type MessageRequest struct {
	SessionUID string
	Message    string
	// WrapUp requests wrap-up phrasing. The server also enters wrap-up on its
	// own once the elapsed-time or exchange-count threshold is crossed,
	// regardless of this flag.
	WrapUp bool
}

// SessionSnapshot is the controller's view of a session returned to callers.
type SessionSnapshot struct {
	Session    *store.InterviewSession
	Transcript []*store.InterviewMessage
	// WrapUpSuggested reports that the next turn will use wrap-up phrasing.
	WrapUpSuggested bool
	// NudgeSuggested reports that the participant has been idle past the
	// nudge threshold. Advisory only.
	NudgeSuggested bool
}

// Controller owns the interview lifecycle state machine.
type Controller struct {
	store    SessionStore
	llm      llm.Service
	plans    PlanProvider
	analyzer AnalysisGenerator
	counter  *finops.TokenCounter
	profile  *profile.Profile
	locks    *sessionLocks
	nowFunc  func() time.Time
}

// NewController wires the controller with its collaborators.
func NewController(sessionStore SessionStore, llmService llm.Service, plans PlanProvider, analyzer AnalysisGenerator, prof *profile.Profile) *Controller {
	return &Controller{
		store:    sessionStore,
		llm:      llmService,
		plans:    plans,
		analyzer: analyzer,
		counter:  finops.NewTokenCounter(),
		profile:  prof,
		locks:    newSessionLocks(),
		nowFunc:  time.Now,
	}
}

// Start creates a session, attaches a plan, seeds the transcript, and moves
// the session to INTERVIEWING before returning.
func (c *Controller) Start(ctx context.Context, req *StartRequest) (*SessionSnapshot, error) {
	rc := observability.ContextLogger(ctx, "start", "")

	var plan *store.InterviewPlan
	var topic string
	switch {
	case req.Topic != "" && req.Role != "":
		return nil, apperrors.InvalidArgument("topic and role are mutually exclusive")
	case req.Role != "":
		fixed, ok := c.plans.PlanForRole(req.Role)
		if !ok {
			return nil, apperrors.InvalidArgumentf("unknown role: %s", req.Role)
		}
		plan = fixed
		topic = "your experience as a " + req.Role
	case req.Topic != "":
		topic = req.Topic
	default:
		return nil, apperrors.InvalidArgument("either topic or role is required")
	}

	if plan == nil {
		plan = c.plans.PlanForTopic(ctx, topic)
	}

	now := c.nowFunc().Unix()
	session, err := c.store.CreateInterviewSession(ctx, &store.InterviewSession{
		UID:       uuid.New().String(),
		Topic:     topic,
		Role:      req.Role,
		Status:    store.SessionStatusPlanning,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to create session", err)
	}

	rc.SessionID = session.UID

	systemMsg := &store.InterviewMessage{
		UID:       shortuuid.New(),
		SessionID: session.ID,
		Role:      store.MessageRoleSystem,
		Content:   buildObjectivesNote(plan),
		CreatedTs: now,
	}
	if _, err := c.store.CreateInterviewMessage(ctx, systemMsg); err != nil {
		return nil, apperrors.PersistenceFailure("failed to record objectives", err)
	}

	openingMsg := &store.InterviewMessage{
		UID:       shortuuid.New(),
		SessionID: session.ID,
		Role:      store.MessageRoleAssistant,
		Content:   buildOpeningMessage(topic, plan),
		CreatedTs: now,
	}
	if _, err := c.store.CreateInterviewMessage(ctx, openingMsg); err != nil {
		return nil, apperrors.PersistenceFailure("failed to record opening message", err)
	}

	interviewing := store.SessionStatusInterviewing
	startedTs := now
	session, err = c.store.UpdateInterviewSession(ctx, &store.UpdateInterviewSession{
		ID:                 session.ID,
		Status:             &interviewing,
		Plan:               plan,
		InterviewStartedTs: &startedTs,
		UpdatedTs:          &now,
	})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to activate session", err)
	}

	rc.Info("interview started",
		slog.String("topic", topic),
		slog.String("role", req.Role),
	)
	return &SessionSnapshot{
		Session:    session,
		Transcript: []*store.InterviewMessage{systemMsg, openingMsg},
	}, nil
}

// Message appends the user message, obtains one assistant reply, and updates
// the cost accumulator. Whether the reply uses probing or wrap-up phrasing is
// decided server side; the request flag can only opt in early.
func (c *Controller) Message(ctx context.Context, req *MessageRequest) (*SessionSnapshot, string, error) {
	observability.ContextLogger(ctx, "message", req.SessionUID)

	if req.SessionUID == "" || req.Message == "" {
		return nil, "", apperrors.InvalidArgument("sessionId and message are required")
	}
	// Start and Complete degrade to fallbacks without a gateway; a
	// conversational turn cannot.
	if c.llm == nil {
		return nil, "", apperrors.LLMUnavailable("no language model is configured")
	}

	unlock := c.locks.Lock(req.SessionUID)
	defer unlock()

	session, err := c.getSession(ctx, req.SessionUID)
	if err != nil {
		return nil, "", err
	}
	if session.Status != store.SessionStatusInterviewing {
		return nil, "", apperrors.FailedPreconditionf("session is %s, expected %s", session.Status, store.SessionStatusInterviewing)
	}

	history, err := c.store.ListInterviewMessages(ctx, &store.FindInterviewMessage{SessionID: &session.ID})
	if err != nil {
		return nil, "", apperrors.PersistenceFailure("failed to load transcript", err)
	}

	// The incoming message counts toward the exchange threshold.
	wrapUp := req.WrapUp || c.shouldWrapUp(session, countUserMessages(history)+1)

	now := c.nowFunc().Unix()
	userMsg, err := c.store.CreateInterviewMessage(ctx, &store.InterviewMessage{
		UID:       shortuuid.New(),
		SessionID: session.ID,
		Role:      store.MessageRoleUser,
		Content:   req.Message,
		CreatedTs: now,
	})
	if err != nil {
		return nil, "", apperrors.PersistenceFailure("failed to append user message", err)
	}

	prompt := buildChatPrompt(session, history, req.Message, wrapUp, c.profile.HistoryWindow)
	reply, err := c.llm.Chat(ctx, prompt)
	if err != nil {
		return nil, "", apperrors.UpstreamFailure("chat completion failed", err)
	}

	assistantMsg, err := c.store.CreateInterviewMessage(ctx, &store.InterviewMessage{
		UID:       shortuuid.New(),
		SessionID: session.ID,
		Role:      store.MessageRoleAssistant,
		Content:   reply,
		CreatedTs: c.nowFunc().Unix(),
	})
	if err != nil {
		return nil, "", apperrors.PersistenceFailure("failed to append assistant message", err)
	}

	c.recordCost(ctx, session, prompt, reply)

	// Reread so the snapshot reflects this turn's cost.
	if refreshed, err := c.getSession(ctx, req.SessionUID); err == nil {
		session = refreshed
	}

	transcript := append(append([]*store.InterviewMessage{}, history...), userMsg, assistantMsg)
	return &SessionSnapshot{
		Session:         session,
		Transcript:      transcript,
		WrapUpSuggested: wrapUp,
	}, reply, nil
}

// Complete runs analysis and moves the session to its terminal state. A
// session that already completed is rejected rather than re-analyzed.
func (c *Controller) Complete(ctx context.Context, sessionUID string) (*SessionSnapshot, error) {
	rc := observability.ContextLogger(ctx, "complete", sessionUID)

	if sessionUID == "" {
		return nil, apperrors.InvalidArgument("sessionId is required")
	}

	unlock := c.locks.Lock(sessionUID)
	defer unlock()

	session, err := c.getSession(ctx, sessionUID)
	if err != nil {
		return nil, err
	}
	if session.Status == store.SessionStatusCompleted || session.Status == store.SessionStatusAnalyzing {
		return nil, apperrors.FailedPreconditionf("session is %s, analysis runs only once", session.Status)
	}
	if session.Plan == nil {
		return nil, apperrors.FailedPrecondition("session has no plan attached")
	}

	now := c.nowFunc().Unix()
	analyzing := store.SessionStatusAnalyzing
	session, err = c.store.UpdateInterviewSession(ctx, &store.UpdateInterviewSession{
		ID:        session.ID,
		Status:    &analyzing,
		UpdatedTs: &now,
	})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to start analysis", err)
	}

	transcript, err := c.store.ListInterviewMessages(ctx, &store.FindInterviewMessage{SessionID: &session.ID})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to load transcript", err)
	}

	analysis, usage := c.analyzer.Analyze(ctx, session, transcript)

	if usage != nil && c.llm != nil {
		c.recordCostText(ctx, session, usage.Prompt, usage.Response)
	}

	now = c.nowFunc().Unix()
	completed := store.SessionStatusCompleted
	session, err = c.store.UpdateInterviewSession(ctx, &store.UpdateInterviewSession{
		ID:        session.ID,
		Status:    &completed,
		Analysis:  analysis,
		UpdatedTs: &now,
	})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to finalize session", err)
	}

	rc.Info("interview completed",
		slog.Int("depth_score", analysis.DepthScore),
		slog.Float64("completion_rate", analysis.CompletionRate),
	)
	return &SessionSnapshot{Session: session, Transcript: transcript}, nil
}

// Get returns a session snapshot with its full transcript.
func (c *Controller) Get(ctx context.Context, sessionUID string) (*SessionSnapshot, error) {
	observability.ContextLogger(ctx, "get", sessionUID)

	if sessionUID == "" {
		return nil, apperrors.InvalidArgument("sessionId is required")
	}

	session, err := c.getSession(ctx, sessionUID)
	if err != nil {
		return nil, err
	}

	transcript, err := c.store.ListInterviewMessages(ctx, &store.FindInterviewMessage{SessionID: &session.ID})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to load transcript", err)
	}

	snapshot := &SessionSnapshot{Session: session, Transcript: transcript}
	if session.Status == store.SessionStatusInterviewing {
		snapshot.WrapUpSuggested = c.shouldWrapUp(session, countUserMessages(transcript))
		snapshot.NudgeSuggested = c.shouldNudge(session, transcript)
	}
	return snapshot, nil
}

func (c *Controller) getSession(ctx context.Context, uid string) (*store.InterviewSession, error) {
	session, err := c.store.GetInterviewSession(ctx, &store.FindInterviewSession{UID: &uid})
	if err != nil {
		return nil, apperrors.PersistenceFailure("failed to load session", err)
	}
	if session == nil {
		return nil, apperrors.NotFound(uid)
	}
	return session, nil
}

// shouldWrapUp is the authoritative wrap-up decision: elapsed interview time
// reached the target duration, or the participant answered enough times.
func (c *Controller) shouldWrapUp(session *store.InterviewSession, userMessageCount int) bool {
	if session.InterviewStartedTs > 0 {
		elapsed := c.nowFunc().Sub(time.Unix(session.InterviewStartedTs, 0))
		if elapsed >= c.profile.TargetDuration {
			return true
		}
	}
	return userMessageCount >= c.profile.MinExchanges
}

// shouldNudge reports whether the participant has been idle past the nudge
// threshold since the last transcript entry.
func (c *Controller) shouldNudge(session *store.InterviewSession, transcript []*store.InterviewMessage) bool {
	lastTs := session.InterviewStartedTs
	if len(transcript) > 0 {
		lastTs = transcript[len(transcript)-1].CreatedTs
	}
	if lastTs <= 0 {
		return false
	}
	return c.nowFunc().Sub(time.Unix(lastTs, 0)) >= c.profile.IdleThreshold
}

// NudgeMessage is the advisory prompt for an idle participant.
func (c *Controller) NudgeMessage() string {
	return nudgeMessage
}

// recordCost estimates and persists the cost of one gateway round trip.
// Cost tracking failures are logged, never surfaced; cost is an estimate and
// must not fail the request.
func (c *Controller) recordCost(ctx context.Context, session *store.InterviewSession, prompt []llm.Message, reply string) {
	c.recordCostText(ctx, session, promptText(prompt), reply)
}

func (c *Controller) recordCostText(ctx context.Context, session *store.InterviewSession, prompt, reply string) {
	model := c.llm.Model()
	tokens := c.counter.Count(model, prompt, reply)
	cost := finops.EstimateCost(tokens, model)
	if err := c.store.IncrementSessionCost(ctx, session.ID, tokens, cost); err != nil {
		slog.Warn("failed to record turn cost",
			"session_uid", session.UID,
			"error", errors.WithStack(err))
	}
}
