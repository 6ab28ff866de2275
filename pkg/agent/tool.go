package agent

import "strings"

type ToolName string

const (
	ToolSearchKnowledge ToolName = "search_knowledge_base"
	ToolChangePassword  ToolName = "change_my_password"
	ToolApplyLeave      ToolName = "apply_for_leave"
)

// Action is one of SearchKnowledge, ChangePassword or ApplyLeave.
type Action interface {
	Tool() ToolName
	isAction()
}

type SearchKnowledge struct {
	Query string
}

type ChangePassword struct {
	Secret string
}

type ApplyLeave struct {
	Start  string
	End    string
	Reason string
}

func (SearchKnowledge) Tool() ToolName { return ToolSearchKnowledge }
func (ChangePassword) Tool() ToolName  { return ToolChangePassword }
func (ApplyLeave) Tool() ToolName      { return ToolApplyLeave }

func (SearchKnowledge) isAction() {}
func (ChangePassword) isAction()  {}
func (ApplyLeave) isAction()      {}

func NewSearchKnowledge(raw string) (SearchKnowledge, error) {
	return SearchKnowledge{Query: strings.TrimSpace(raw)}, nil
}

func NewChangePassword(raw string) (ChangePassword, error) {
	secret, err := CleanPassword(raw)
	if err != nil {
		return ChangePassword{}, err
	}
	return ChangePassword{Secret: secret}, nil
}

// NewAction builds the typed action for a tool name from the single-string protocol input.
func NewAction(name ToolName, raw string) (Action, error) {
	switch name {
	case ToolSearchKnowledge:
		return NewSearchKnowledge(raw)
	case ToolChangePassword:
		return NewChangePassword(raw)
	case ToolApplyLeave:
		return ParseLeave(raw)
	}
	return nil, &ToolInputError{Tool: name, Message: string(name) + " is not a valid tool, try one of [" + strings.Join(toolNames(), ", ") + "]."}
}

type ToolDescriptor struct {
	Name          ToolName
	Description   string
	InputContract string
}

var toolDescriptors = []ToolDescriptor{
	{
		Name:          ToolSearchKnowledge,
		Description:   "Search for company policies, HR rules, IT guidelines, or procedures.",
		InputContract: `Input should be the search query (e.g., "leave policy").`,
	},
	{
		Name:          ToolChangePassword,
		Description:   "Changes the password for the current user.",
		InputContract: "Input should be JUST the new password string.",
	},
	{
		Name:          ToolApplyLeave,
		Description:   "Submits a leave request.",
		InputContract: `INPUT MUST BE A SINGLE STRING: "Start, End, Reason"`,
	},
}

func toolNames() []string {
	names := make([]string, len(toolDescriptors))
	for i, d := range toolDescriptors {
		names[i] = string(d.Name)
	}
	return names
}
