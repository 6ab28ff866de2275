package mapper

import (
	"knagent-be/internal/entity"
	"knagent-be/internal/model"
)

type LeaveRequestMapper struct{}

func NewLeaveRequestMapper() *LeaveRequestMapper {
	return &LeaveRequestMapper{}
}

func (m *LeaveRequestMapper) ToEntity(l *model.LeaveRequest) *entity.LeaveRequest {
	if l == nil {
		return nil
	}
	return &entity.LeaveRequest{
		Id:        l.Id,
		UserId:    l.UserId,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Reason:    l.Reason,
		Status:    entity.LeaveStatus(l.Status),
		Timestamp: l.Timestamp,
	}
}

func (m *LeaveRequestMapper) ToModel(l *entity.LeaveRequest) *model.LeaveRequest {
	if l == nil {
		return nil
	}
	return &model.LeaveRequest{
		Id:        l.Id,
		UserId:    l.UserId,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Reason:    l.Reason,
		Status:    string(l.Status),
		Timestamp: l.Timestamp,
	}
}
