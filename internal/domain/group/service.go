package group

import "context"

type GroupService interface {
	ListGroups(ctx context.Context) ([]GroupResponse, error)
	GetGroup(ctx context.Context, id int64) (GroupResponse, error)
	CreateGroup(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	// UpdateGroup renames the group and replaces its whole schedule atomically.
	UpdateGroup(ctx context.Context, req UpdateGroupRequest) (GroupResponse, error)
	DeleteGroup(ctx context.Context, id int64) error
}
