package store

// SessionStatus is the lifecycle status of an interview session.
// Transitions are monotonic: PLANNING -> INTERVIEWING -> ANALYZING -> COMPLETED.
type SessionStatus string

const (
	SessionStatusPlanning     SessionStatus = "PLANNING"
	SessionStatusInterviewing SessionStatus = "INTERVIEWING"
	SessionStatusAnalyzing    SessionStatus = "ANALYZING"
	SessionStatusCompleted    SessionStatus = "COMPLETED"
)

// InterviewPlan is the objectives/questions/focus-areas bundle guiding a session.
// Once attached to a session it is never mutated.
type InterviewPlan struct {
	Objectives []string `json:"objectives"`
	Questions  []string `json:"questions"`
	FocusAreas []string `json:"focusAreas"`
}

// InterviewAnalysis is the structured closing judgment of a session,
// produced exactly once at the ANALYZING -> COMPLETED transition.
type InterviewAnalysis struct {
	Summary         string   `json:"summary"`
	KeyInsights     []string `json:"keyInsights"`
	DepthScore      int      `json:"depthScore"`
	CompletionRate  float64  `json:"completionRate"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// SessionCost is the running model-usage accumulator for a session.
// Both fields are monotonically non-decreasing.
type SessionCost struct {
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}

type InterviewSession struct {
	ID  int32
	UID string

	// Exactly one of Topic / Role is set, depending on how the session was started.
	Topic string
	Role  string

	Status   SessionStatus
	Plan     *InterviewPlan
	Analysis *InterviewAnalysis
	Cost     SessionCost

	CreatedTs int64
	UpdatedTs int64
	// InterviewStartedTs is set at the PLANNING -> INTERVIEWING transition and
	// anchors the server-side wrap-up timing decision.
	InterviewStartedTs int64
}

type FindInterviewSession struct {
	ID     *int32
	UID    *string
	Status *SessionStatus
}

type UpdateInterviewSession struct {
	ID                 int32
	Status             *SessionStatus
	Plan               *InterviewPlan
	Analysis           *InterviewAnalysis
	InterviewStartedTs *int64
	UpdatedTs          *int64
}

// MessageRole is the author of a transcript message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "USER"
	MessageRoleAssistant MessageRole = "ASSISTANT"
	MessageRoleSystem    MessageRole = "SYSTEM"
)

// InterviewMessage is one entry of a session transcript.
// Messages are append-only: no edits or deletes.
type InterviewMessage struct {
	ID        int32
	UID       string
	SessionID int32
	Role      MessageRole
	Content   string
	CreatedTs int64
}

type FindInterviewMessage struct {
	ID        *int32
	UID       *string
	SessionID *int32
}
