package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inquora/inquora/server/interview"
	apperrors "github.com/inquora/inquora/server/internal/errors"
)

type startInterviewRequest struct {
	Topic string `json:"topic"`
	Role  string `json:"role"`
}

type sendMessageRequest struct {
	Message  string `json:"message"`
	IsWrapUp bool   `json:"isWrapUp"`
}

type messageView struct {
	UID       string `json:"uid"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type planView struct {
	Objectives []string `json:"objectives"`
	Questions  []string `json:"questions"`
	FocusAreas []string `json:"focusAreas"`
}

type analysisView struct {
	Summary         string   `json:"summary"`
	KeyInsights     []string `json:"keyInsights"`
	DepthScore      int      `json:"depthScore"`
	CompletionRate  float64  `json:"completionRate"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type costView struct {
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}

type sessionView struct {
	ID              string        `json:"id"`
	Topic           string        `json:"topic"`
	Role            string        `json:"role,omitempty"`
	Status          string        `json:"status"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	Plan            *planView     `json:"plan,omitempty"`
	Analysis        *analysisView `json:"analysis,omitempty"`
	Cost            *costView     `json:"cost,omitempty"`
	Transcript      []messageView `json:"transcript"`
	WrapUpSuggested bool          `json:"wrapUpSuggested,omitempty"`
	NudgeSuggested  bool          `json:"nudgeSuggested,omitempty"`
}

type messageResponse struct {
	Reply   string       `json:"reply"`
	Session *sessionView `json:"session"`
}

// StartInterview handles POST /api/v1/interviews.
func (s *APIV1Service) StartInterview(c echo.Context) error {
	var req startInterviewRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.InvalidArgument("malformed request body"))
	}

	snapshot, err := s.Controller.Start(c.Request().Context(), &interview.StartRequest{
		Topic: req.Topic,
		Role:  req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionView(snapshot))
}

// SendMessage handles POST /api/v1/interviews/:id/messages.
func (s *APIV1Service) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.InvalidArgument("malformed request body"))
	}

	snapshot, reply, err := s.Controller.Message(c.Request().Context(), &interview.MessageRequest{
		SessionUID: c.Param("id"),
		Message:    req.Message,
		WrapUp:     req.IsWrapUp,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, &messageResponse{
		Reply:   reply,
		Session: toSessionView(snapshot),
	})
}

// CompleteInterview handles POST /api/v1/interviews/:id/complete.
func (s *APIV1Service) CompleteInterview(c echo.Context) error {
	snapshot, err := s.Controller.Complete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionView(snapshot))
}

// GetInterview handles GET /api/v1/interviews/:id.
func (s *APIV1Service) GetInterview(c echo.Context) error {
	snapshot, err := s.Controller.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionView(snapshot))
}

func toSessionView(snapshot *interview.SessionSnapshot) *sessionView {
	session := snapshot.Session
	view := &sessionView{
		ID:              session.UID,
		Topic:           session.Topic,
		Role:            session.Role,
		Status:          string(session.Status),
		CreatedAt:       unixToRFC3339(session.CreatedTs),
		UpdatedAt:       unixToRFC3339(session.UpdatedTs),
		Transcript:      make([]messageView, 0, len(snapshot.Transcript)),
		WrapUpSuggested: snapshot.WrapUpSuggested,
		NudgeSuggested:  snapshot.NudgeSuggested,
	}

	if plan := session.Plan; plan != nil {
		view.Plan = &planView{
			Objectives: plan.Objectives,
			Questions:  plan.Questions,
			FocusAreas: plan.FocusAreas,
		}
	}
	if analysis := session.Analysis; analysis != nil {
		view.Analysis = &analysisView{
			Summary:         analysis.Summary,
			KeyInsights:     analysis.KeyInsights,
			DepthScore:      analysis.DepthScore,
			CompletionRate:  analysis.CompletionRate,
			Recommendations: analysis.Recommendations,
		}
	}
	if session.Cost.Tokens > 0 || session.Cost.Cost > 0 {
		view.Cost = &costView{Tokens: session.Cost.Tokens, Cost: session.Cost.Cost}
	}

	for _, msg := range snapshot.Transcript {
		view.Transcript = append(view.Transcript, messageView{
			UID:       msg.UID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: unixToRFC3339(msg.CreatedTs),
		})
	}
	return view
}
