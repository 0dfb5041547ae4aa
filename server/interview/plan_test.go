package interview

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inquora/inquora/plugin/llm"
)

// mockLLM implements llm.Service for tests.
type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Model() string {
	return "gpt-4o-mini"
}

func TestPlanForTopicParsesFencedResponse(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return("```json\n"+
		`{"objectives":["o1","o2","o3"],"questions":["q1","q2","q3","q4","q5","q6","q7","q8"],"focusAreas":["f1","f2","f3"]}`+
		"\n```", nil)

	provider := NewPlanProvider(llmMock)
	plan := provider.PlanForTopic(context.Background(), "remote work")

	require.NotNil(t, plan)
	assert.Len(t, plan.Objectives, 3)
	assert.Len(t, plan.Questions, 8)
	assert.Len(t, plan.FocusAreas, 3)
	llmMock.AssertExpectations(t)
}

func TestPlanForTopicFallsBackOnGarbage(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return("I cannot produce a plan right now.", nil)

	provider := NewPlanProvider(llmMock)
	plan := provider.PlanForTopic(context.Background(), "urban gardening")

	require.NotNil(t, plan)
	assert.Len(t, plan.Objectives, 1)
	assert.Len(t, plan.Questions, 3)
	assert.Len(t, plan.FocusAreas, 3)
	assert.Contains(t, plan.Objectives[0], "urban gardening")
}

func TestPlanForTopicFallsBackOnGatewayError(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	provider := NewPlanProvider(llmMock)
	plan := provider.PlanForTopic(context.Background(), "commuting")

	require.NotNil(t, plan)
	assert.NotEmpty(t, plan.Questions)
}

func TestPlanForTopicNilService(t *testing.T) {
	provider := NewPlanProvider(nil)
	plan := provider.PlanForTopic(context.Background(), "offline mode")
	require.NotNil(t, plan)
	assert.NotEmpty(t, plan.Questions)
}

func TestPlanForRole(t *testing.T) {
	provider := NewPlanProvider(nil)

	for _, role := range []string{RoleStudent, RoleInstructor, RoleResearcher, RoleStaff} {
		plan, ok := provider.PlanForRole(role)
		require.True(t, ok, role)
		assert.GreaterOrEqual(t, len(plan.Objectives), 3, role)
		assert.LessOrEqual(t, len(plan.Objectives), 5, role)
		assert.GreaterOrEqual(t, len(plan.Questions), 8, role)
		assert.LessOrEqual(t, len(plan.Questions), 12, role)
		assert.GreaterOrEqual(t, len(plan.FocusAreas), 3, role)
		assert.LessOrEqual(t, len(plan.FocusAreas), 5, role)
	}

	_, ok := provider.PlanForRole("alumnus")
	assert.False(t, ok)
}

func TestPlanForRoleReturnsCopy(t *testing.T) {
	provider := NewPlanProvider(nil)
	plan, ok := provider.PlanForRole(RoleStudent)
	require.True(t, ok)

	plan.Objectives = nil

	again, ok := provider.PlanForRole(RoleStudent)
	require.True(t, ok)
	assert.NotEmpty(t, again.Objectives)
}

func TestParsePlanBraceSpan(t *testing.T) {
	text := `Here you go: {"objectives":["a"],"questions":["b"],"focusAreas":["c"]} enjoy!`
	plan := parsePlan(text)
	require.NotNil(t, plan)
	assert.Equal(t, []string{"a"}, plan.Objectives)
}

func TestParsePlanRejectsIncomplete(t *testing.T) {
	assert.Nil(t, parsePlan(`{"objectives":["a"],"questions":[]}`))
	assert.Nil(t, parsePlan("not json"))
}
