package mapper

import (
	"knagent-be/internal/entity"
	"knagent-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:           a.Id,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.HashedPassword,
		Role:         entity.Role(a.Role),
		Disabled:     a.Disabled,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		Id:             a.Id,
		Email:          a.Email,
		FullName:       a.FullName,
		HashedPassword: a.PasswordHash,
		Role:           string(a.Role),
		Disabled:       a.Disabled,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
