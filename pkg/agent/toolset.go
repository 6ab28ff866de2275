package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knagent-be/internal/entity"
)

const (
	msgNoDocuments     = "No relevant documents found."
	msgAccountNotFound = "Error: User account not found."
	msgLeaveRequested  = "Success: Leave requested."
)

// Identity is the authenticated caller. UserID is the account email.
type Identity struct {
	UserID string
	Role   entity.Role
}

type KnowledgeSearcher interface {
	Retrieve(ctx context.Context, query string, role entity.Role) ([]*entity.KnowledgeChunk, error)
}

type AccountStore interface {
	// FindAccount returns nil, nil when no account exists.
	FindAccount(ctx context.Context, userID string) (*entity.Account, error)
	UpdateCredential(ctx context.Context, userID, passwordHash string) error
}

type LeaveStore interface {
	CreateLeaveRecord(ctx context.Context, req *entity.LeaveRequest) error
}

type PasswordHasher func(secret string) (string, error)

// ToolSet executes actions on behalf of one caller at a time. Recoverable failures come back as
// observation strings; the error return is reserved for backend failures.
type ToolSet struct {
	searcher KnowledgeSearcher
	accounts AccountStore
	leaves   LeaveStore
	hash     PasswordHasher
}

func NewToolSet(searcher KnowledgeSearcher, accounts AccountStore, leaves LeaveStore, hash PasswordHasher) *ToolSet {
	return &ToolSet{
		searcher: searcher,
		accounts: accounts,
		leaves:   leaves,
		hash:     hash,
	}
}

func (t *ToolSet) Descriptors() []ToolDescriptor {
	return append([]ToolDescriptor(nil), toolDescriptors...)
}

func (t *ToolSet) Names() []ToolName {
	names := make([]ToolName, len(toolDescriptors))
	for i, d := range toolDescriptors {
		names[i] = d.Name
	}
	return names
}

// Dispatch builds the action for name from raw and invokes it.
func (t *ToolSet) Dispatch(ctx context.Context, id Identity, name ToolName, raw string) (string, error) {
	action, err := NewAction(name, raw)
	if err != nil {
		var inputErr *ToolInputError
		if errors.As(err, &inputErr) {
			return inputErr.Message, nil
		}
		return "", err
	}
	return t.Invoke(ctx, id, action)
}

func (t *ToolSet) Invoke(ctx context.Context, id Identity, action Action) (string, error) {
	switch a := action.(type) {
	case SearchKnowledge:
		return t.searchKnowledge(ctx, id, a)
	case ChangePassword:
		return t.changePassword(ctx, id, a)
	case ApplyLeave:
		return t.applyLeave(ctx, id, a)
	default:
		return "", fmt.Errorf("unsupported action %T", action)
	}
}

func (t *ToolSet) searchKnowledge(ctx context.Context, id Identity, a SearchKnowledge) (string, error) {
	chunks, err := t.searcher.Retrieve(ctx, a.Query, id.Role)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return msgNoDocuments, nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

func (t *ToolSet) changePassword(ctx context.Context, id Identity, a ChangePassword) (string, error) {
	if a.Secret == "" {
		return msgEmptyPassword, nil
	}

	account, err := t.accounts.FindAccount(ctx, id.UserID)
	if err != nil {
		return "", err
	}
	if account == nil {
		return msgAccountNotFound, nil
	}

	hash, err := t.hash(a.Secret)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := t.accounts.UpdateCredential(ctx, id.UserID, hash); err != nil {
		return "", err
	}
	return fmt.Sprintf("Success: Password updated to '%s'", a.Secret), nil
}

func (t *ToolSet) applyLeave(ctx context.Context, id Identity, a ApplyLeave) (string, error) {
	req := &entity.LeaveRequest{
		UserId:    id.UserID,
		StartDate: a.Start,
		EndDate:   a.End,
		Reason:    a.Reason,
		Status:    entity.LeaveStatusPending,
	}
	if err := t.leaves.CreateLeaveRecord(ctx, req); err != nil {
		return "", err
	}
	return msgLeaveRequested, nil
}
