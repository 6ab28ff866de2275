package agent

import (
	"strings"
	"time"
)

const promptTemplate = `
You are the KNAgent.

**Current Date:** {current_date}

**Tools:**
{tools}

**Instructions:**
1. **Greetings:** If the user greets you, just reply naturally. DO NOT use tools.
2. **Knowledge:** Use 'search_knowledge_base' for policies.
3. **Passwords:** Use 'change_my_password'. Input is just the new password.
4. **Leave:** Use 'apply_for_leave'. 
   - **CRITICAL:** The Action Input must be a SINGLE string separated by commas: "Start, End, Reason".
   - Example: "2025-12-01, 2025-12-05, Sick leave"
   - If the user says "one day", Start and End are the same date.

**Format:**
Question: the input question
Thought: think about what to do
Action: the action to take, must be one of [{tool_names}]
Action Input: the input to the action
Observation: the result of the action
...
Final Answer: the final response
{history}
Begin!

Question: {input}
Thought:{agent_scratchpad}`

// HistoryTurn is one earlier message of the session; Role is "human" or "ai".
type HistoryTurn struct {
	Role    string
	Content string
}

// Step is one completed iteration: what the model said and what came back.
// Action is nil when the model output was rejected by the parser.
type Step struct {
	Thought     string
	Action      *ToolName
	ActionInput string
	Observation string
	Log         string
}

type promptData struct {
	Now         time.Time
	Descriptors []ToolDescriptor
	History     []HistoryTurn
	Question    string
	Steps       []Step
}

func renderPrompt(d promptData) string {
	tools := make([]string, len(d.Descriptors))
	names := make([]string, len(d.Descriptors))
	for i, desc := range d.Descriptors {
		tools[i] = string(desc.Name) + ": " + desc.Description + " " + desc.InputContract
		names[i] = string(desc.Name)
	}

	return strings.NewReplacer(
		"{current_date}", d.Now.Format("2006-01-02"),
		"{tools}", strings.Join(tools, "\n"),
		"{tool_names}", strings.Join(names, ", "),
		"{history}", renderHistory(d.History),
		"{input}", d.Question,
		"{agent_scratchpad}", renderScratchpad(d.Steps),
	).Replace(promptTemplate)
}

func renderHistory(turns []HistoryTurn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n**Conversation so far:**\n")
	for _, t := range turns {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func renderScratchpad(steps []Step) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(s.Log)
		b.WriteString("\nObservation: ")
		b.WriteString(s.Observation)
		b.WriteString("\nThought: ")
	}
	return b.String()
}
