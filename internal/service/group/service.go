package group

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/pkg/database"
)

type GroupServiceImpl struct {
	tx        database.Transactor
	groupRepo group.GroupRepository
}

func NewGroupService(tx database.Transactor, groupRepo group.GroupRepository) group.GroupService {
	return &GroupServiceImpl{
		tx:        tx,
		groupRepo: groupRepo,
	}
}

// ListGroups implements group.GroupService.
func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]group.GroupResponse, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, group.NewGroupResponse(g))
	}
	return responses, nil
}

// GetGroup implements group.GroupService.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, id int64) (group.GroupResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}

	count, err := s.groupRepo.CountEmployees(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}

	resp := group.NewGroupResponse(g)
	resp.EmployeeCount = &count
	return resp, nil
}

// CreateGroup implements group.GroupService.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	var created group.Group
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		g, err := s.groupRepo.Create(txCtx, group.Group{
			Name:        strings.TrimSpace(req.Name),
			IsScheduled: req.IsScheduled,
		})
		if err != nil {
			return err
		}

		g.Schedule, err = s.groupRepo.ReplaceSchedule(txCtx, g.ID, group.ToEntries(g.ID, req.Schedule))
		if err != nil {
			return err
		}

		created = g
		return nil
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("group created", "group_id", created.ID, "name", created.Name, "days", len(created.Schedule))
	return group.NewGroupResponse(created), nil
}

// UpdateGroup implements group.GroupService.
func (s *GroupServiceImpl) UpdateGroup(ctx context.Context, req group.UpdateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	var updated group.Group
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		g, err := s.groupRepo.Update(txCtx, group.Group{
			ID:          req.ID,
			Name:        strings.TrimSpace(req.Name),
			IsScheduled: req.IsScheduled,
		})
		if err != nil {
			return err
		}

		g.Schedule, err = s.groupRepo.ReplaceSchedule(txCtx, g.ID, group.ToEntries(g.ID, req.Schedule))
		if err != nil {
			return err
		}

		updated = g
		return nil
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	slog.Info("group updated", "group_id", updated.ID, "name", updated.Name, "days", len(updated.Schedule))
	return group.NewGroupResponse(updated), nil
}

// DeleteGroup implements group.GroupService.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.groupRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		count, err := s.groupRepo.CountEmployees(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d employee(s) in group %d", group.ErrGroupHasEmployees, count, id)
		}

		return s.groupRepo.Delete(txCtx, id)
	})
}
