package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONCandidatesFencedBlock(t *testing.T) {
	text := "Here is the plan:\n```json\n{\"objectives\": [\"a\"]}\n```\nHope that helps."
	candidates := extractJSONCandidates(text)
	require.NotEmpty(t, candidates)
	assert.Equal(t, `{"objectives": ["a"]}`, candidates[0])
}

func TestExtractJSONCandidatesBraceSpan(t *testing.T) {
	text := `Sure! {"summary": "ok", "depthScore": 4} Let me know.`
	candidates := extractJSONCandidates(text)
	require.NotEmpty(t, candidates)
	assert.Equal(t, `{"summary": "ok", "depthScore": 4}`, candidates[0])
}

func TestExtractJSONCandidatesRawFallback(t *testing.T) {
	candidates := extractJSONCandidates("no json here at all")
	require.Len(t, candidates, 1)
	assert.Equal(t, "no json here at all", candidates[0])
}

func TestExtractJSONCandidatesOrder(t *testing.T) {
	text := "```json\n{\"a\": 1}\n```"
	candidates := extractJSONCandidates(text)
	// Fenced content first, then the brace span, then the raw text.
	require.Len(t, candidates, 3)
	assert.Equal(t, `{"a": 1}`, candidates[0])
	assert.Equal(t, `{"a": 1}`, candidates[1])
}

func TestFirstBraceSpanNested(t *testing.T) {
	text := `prefix {"outer": {"inner": 1}} suffix {"second": 2}`
	assert.Equal(t, `{"outer": {"inner": 1}}`, firstBraceSpan(text))
}

func TestFirstBraceSpanBracesInsideStrings(t *testing.T) {
	text := `{"note": "contains } brace", "n": 1}`
	assert.Equal(t, text, firstBraceSpan(text))
}

func TestFirstBraceSpanUnbalanced(t *testing.T) {
	assert.Equal(t, "", firstBraceSpan(`{"never": "closed"`))
	assert.Equal(t, "", firstBraceSpan("no braces"))
}
