package interview

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inquora/inquora/store"
)

func userMsg(content string) *store.InterviewMessage {
	return &store.InterviewMessage{Role: store.MessageRoleUser, Content: content}
}

func assistantMsg(content string) *store.InterviewMessage {
	return &store.InterviewMessage{Role: store.MessageRoleAssistant, Content: content}
}

func testSession() *store.InterviewSession {
	return &store.InterviewSession{
		UID:   "sess-1",
		Topic: "remote work",
		Plan: &store.InterviewPlan{
			Objectives: []string{"understand habits"},
			Questions:  []string{"q1"},
			FocusAreas: []string{"habits"},
		},
	}
}

func TestAnalyzeNoEngagement(t *testing.T) {
	llmMock := &mockLLM{}
	gen := NewAnalysisGenerator(llmMock)

	analysis, usage := gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		assistantMsg("Welcome! First question..."),
	})

	assert.Equal(t, 0, analysis.DepthScore)
	assert.Equal(t, 0.0, analysis.CompletionRate)
	assert.Nil(t, usage)
	llmMock.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestAnalyzeMinimalEngagement(t *testing.T) {
	llmMock := &mockLLM{}
	gen := NewAnalysisGenerator(llmMock)

	analysis, usage := gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		assistantMsg("Welcome!"),
		userMsg("Hi"),
	})

	assert.Equal(t, 1, analysis.DepthScore)
	assert.InDelta(t, 0.1, analysis.CompletionRate, 1e-9)
	assert.Nil(t, usage)
	llmMock.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)

	analysis, _ = gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		userMsg("Hi"), assistantMsg("q"), userMsg("ok"),
	})
	assert.Equal(t, 1, analysis.DepthScore)
	assert.InDelta(t, 0.2, analysis.CompletionRate, 1e-9)
}

func TestAnalyzeFullEngagement(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return(
		`{"summary":"Good interview","keyInsights":["insight"],"depthScore":4,"completionRate":0.9,"recommendations":["more probing"]}`, nil)
	gen := NewAnalysisGenerator(llmMock)

	analysis, usage := gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		userMsg("a"), assistantMsg("q"), userMsg("b"), assistantMsg("q"), userMsg("c"),
	})

	require.NotNil(t, analysis)
	assert.Equal(t, "Good interview", analysis.Summary)
	assert.Equal(t, 4, analysis.DepthScore)
	assert.InDelta(t, 0.9, analysis.CompletionRate, 1e-9)
	require.NotNil(t, usage)
	assert.NotEmpty(t, usage.Prompt)
	assert.Contains(t, usage.Response, "Good interview")
	llmMock.AssertExpectations(t)
}

func TestAnalyzeParseFailureFallsBack(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return("the transcript was interesting", nil)
	gen := NewAnalysisGenerator(llmMock)

	analysis, usage := gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		userMsg("a"), userMsg("b"), userMsg("c"),
	})

	assert.Equal(t, 3, analysis.DepthScore)
	assert.InDelta(t, 0.8, analysis.CompletionRate, 1e-9)
	require.NotNil(t, usage)
	assert.Equal(t, "the transcript was interesting", usage.Response)
}

func TestAnalyzeGatewayErrorFallsBack(t *testing.T) {
	llmMock := &mockLLM{}
	llmMock.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("timeout"))
	gen := NewAnalysisGenerator(llmMock)

	analysis, usage := gen.Analyze(context.Background(), testSession(), []*store.InterviewMessage{
		userMsg("a"), userMsg("b"), userMsg("c"),
	})

	assert.Equal(t, 3, analysis.DepthScore)
	assert.Nil(t, usage)
}

func TestParseAnalysisClampsRanges(t *testing.T) {
	analysis := parseAnalysis(`{"summary":"s","depthScore":9,"completionRate":1.4}`)
	require.NotNil(t, analysis)
	assert.Equal(t, 5, analysis.DepthScore)
	assert.Equal(t, 1.0, analysis.CompletionRate)

	analysis = parseAnalysis(`{"summary":"s","depthScore":0,"completionRate":-0.2}`)
	require.NotNil(t, analysis)
	assert.Equal(t, 1, analysis.DepthScore)
	assert.Equal(t, 0.0, analysis.CompletionRate)
}

func TestParseAnalysisRequiresSummary(t *testing.T) {
	assert.Nil(t, parseAnalysis(`{"depthScore":3}`))
}
