package interview

import (
	"fmt"
	"strings"

	"github.com/inquora/inquora/plugin/llm"
	"github.com/inquora/inquora/store"
)

const interviewerSystemPrompt = "You are a skilled qualitative interviewer. You ask one question at a time, " +
	"listen carefully, and follow up on what the participant actually said. Keep replies short and conversational."

const planSystemPrompt = "You are an interview planner. You respond with a single JSON object and nothing else."

const analysisSystemPrompt = "You are an interview analyst. You respond with a single JSON object and nothing else."

// buildPlanPrompt asks the model for a structured interview plan on a topic.
func buildPlanPrompt(topic string) []llm.Message {
	prompt := fmt.Sprintf(`Design an interview plan for the topic: %q.

Respond with a JSON object of this exact shape:
{
  "objectives": ["..."],
  "questions": ["..."],
  "focusAreas": ["..."]
}

Requirements:
- 3 to 5 objectives describing what the interview should learn.
- 8 to 12 open-ended seed questions, ordered from broad to specific.
- 3 to 5 focus areas worth probing in follow-ups.

Output only the JSON object, no commentary.`, topic)

	return []llm.Message{
		llm.SystemPrompt(planSystemPrompt),
		llm.UserMessage(prompt),
	}
}

// buildChatPrompt composes the conversational prompt for a follow-up turn.
// Only the most recent historyWindow transcript entries are included; older
// context is dropped on purpose.
func buildChatPrompt(session *store.InterviewSession, history []*store.InterviewMessage, userMessage string, wrapUp bool, historyWindow int) []llm.Message {
	var sb strings.Builder
	sb.WriteString(interviewerSystemPrompt)
	sb.WriteString(fmt.Sprintf("\n\nInterview topic: %s.", session.Topic))

	if plan := session.Plan; plan != nil {
		if len(plan.Objectives) > 0 {
			sb.WriteString("\nObjectives: ")
			sb.WriteString(strings.Join(plan.Objectives, "; "))
		}
		if len(plan.FocusAreas) > 0 {
			sb.WriteString("\nFocus areas to explore: ")
			sb.WriteString(strings.Join(plan.FocusAreas, "; "))
		}
	}

	if wrapUp {
		sb.WriteString("\n\nThe interview is wrapping up. Thank the participant, ask one final closing question " +
			"inviting any last thoughts, and do not open new lines of inquiry.")
	} else {
		sb.WriteString("\n\nAsk exactly one probing follow-up question grounded in what the participant just said. " +
			"Prefer depth over breadth; connect back to the focus areas when natural.")
	}

	messages := []llm.Message{llm.SystemPrompt(sb.String())}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		switch msg.Role {
		case store.MessageRoleUser:
			messages = append(messages, llm.UserMessage(msg.Content))
		case store.MessageRoleAssistant:
			messages = append(messages, llm.AssistantMessage(msg.Content))
		}
	}

	messages = append(messages, llm.UserMessage(userMessage))
	return messages
}

// buildAnalysisPrompt composes the final-analysis prompt from the full
// non-system transcript and the plan objectives.
func buildAnalysisPrompt(session *store.InterviewSession, transcript []*store.InterviewMessage) []llm.Message {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze the following interview about %q.\n\n", session.Topic))

	if plan := session.Plan; plan != nil && len(plan.Objectives) > 0 {
		sb.WriteString("The interview objectives were:\n")
		for _, obj := range plan.Objectives {
			sb.WriteString("- ")
			sb.WriteString(obj)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Transcript:\n")
	for _, msg := range transcript {
		if msg.Role == store.MessageRoleSystem {
			continue
		}
		label := "Participant"
		if msg.Role == store.MessageRoleAssistant {
			label = "Interviewer"
		}
		sb.WriteString(fmt.Sprintf("[%s]: %s\n", label, msg.Content))
	}

	sb.WriteString(`
Respond with a JSON object of this exact shape:
{
  "summary": "...",
  "keyInsights": ["..."],
  "depthScore": 1,
  "completionRate": 0.0,
  "recommendations": ["..."]
}

Base every field only on what the participant actually said in the transcript.
Do not infer insights from the objectives alone. depthScore is an integer from
1 to 5; completionRate is a number from 0 to 1. Output only the JSON object.`)

	return []llm.Message{
		llm.SystemPrompt(analysisSystemPrompt),
		llm.UserMessage(sb.String()),
	}
}

// buildOpeningMessage renders the assistant greeting that starts an interview.
func buildOpeningMessage(topic string, plan *store.InterviewPlan) string {
	firstQuestion := "To get us started, could you tell me a bit about your experience with this topic?"
	if plan != nil && len(plan.Questions) > 0 {
		firstQuestion = plan.Questions[0]
	}
	return fmt.Sprintf("Hi! Thanks for taking the time to talk about %s today. "+
		"There are no right or wrong answers; I'm just interested in your perspective. %s", topic, firstQuestion)
}

// buildObjectivesNote renders the system transcript entry recording the plan.
func buildObjectivesNote(plan *store.InterviewPlan) string {
	if plan == nil || len(plan.Objectives) == 0 {
		return "Interview objectives: (none recorded)"
	}
	return "Interview objectives: " + strings.Join(plan.Objectives, "; ")
}

// promptText flattens a prompt into one string for token counting.
func promptText(messages []llm.Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// nudgeMessage is the advisory prompt shown to an idle participant. It never
// forces the interview to close.
const nudgeMessage = "Still there? Take your time; whenever you're ready, feel free to continue or let me know if you'd like to wrap up."
