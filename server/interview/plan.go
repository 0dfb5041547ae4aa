package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/inquora/inquora/plugin/llm"
	"github.com/inquora/inquora/store"
)

// PlanProvider supplies an interview plan for a topic or role.
type PlanProvider interface {
	PlanForTopic(ctx context.Context, topic string) *store.InterviewPlan
	PlanForRole(role string) (*store.InterviewPlan, bool)
}

// planProvider generates plans via the language model for free topics and
// serves pre-authored plans for known roles.
type planProvider struct {
	llm llm.Service
}

// NewPlanProvider creates the default plan provider.
func NewPlanProvider(llmService llm.Service) PlanProvider {
	return &planProvider{llm: llmService}
}

// PlanForTopic asks the model for a plan and never fails: a parse failure or
// gateway error substitutes a deterministic fallback derived from the topic.
func (p *planProvider) PlanForTopic(ctx context.Context, topic string) *store.InterviewPlan {
	if p.llm == nil {
		return fallbackPlan(topic)
	}

	response, err := p.llm.Chat(ctx, buildPlanPrompt(topic))
	if err != nil {
		slog.Warn("plan generation failed, using fallback plan",
			"topic", topic, "error", err)
		return fallbackPlan(topic)
	}

	if plan := parsePlan(response); plan != nil {
		return plan
	}

	slog.Debug("plan response did not parse, using fallback plan", "topic", topic)
	return fallbackPlan(topic)
}

// PlanForRole looks up a pre-authored plan. No model call is involved.
func (p *planProvider) PlanForRole(role string) (*store.InterviewPlan, bool) {
	plan, ok := fixedPlans[role]
	if !ok {
		return nil, false
	}
	// Copy so callers cannot mutate the shared table.
	clone := *plan
	return &clone, true
}

// parsePlan tries each extraction candidate in order and returns the first
// one that unmarshals into a valid plan, or nil when none do.
func parsePlan(text string) *store.InterviewPlan {
	for _, candidate := range extractJSONCandidates(text) {
		var plan store.InterviewPlan
		if err := json.Unmarshal([]byte(candidate), &plan); err != nil {
			continue
		}
		if validPlan(&plan) {
			return &plan
		}
	}
	return nil
}

// validPlan is the single authority on whether a decoded plan is usable.
func validPlan(plan *store.InterviewPlan) bool {
	return len(plan.Objectives) > 0 && len(plan.Questions) > 0 && len(plan.FocusAreas) > 0
}

// fallbackPlan derives a generic but well-formed plan from the topic string.
func fallbackPlan(topic string) *store.InterviewPlan {
	return &store.InterviewPlan{
		Objectives: []string{
			fmt.Sprintf("Understand the participant's experience and perspective on %s", topic),
		},
		Questions: []string{
			fmt.Sprintf("Could you tell me about your experience with %s?", topic),
			fmt.Sprintf("What challenges have you encountered related to %s?", topic),
			fmt.Sprintf("If you could change one thing about %s, what would it be?", topic),
		},
		FocusAreas: []string{
			"personal experience",
			"challenges and pain points",
			"suggestions for improvement",
		},
	}
}
