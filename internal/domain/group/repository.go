package group

import "context"

type GroupRepository interface {
	// Create inserts the group row and fills ID and timestamps.
	Create(ctx context.Context, g Group) (Group, error)
	Update(ctx context.Context, g Group) (Group, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Group, error)
	GetByName(ctx context.Context, name string) (Group, error)

	// List returns every group with its schedule entries ordered by weekday.
	List(ctx context.Context) ([]Group, error)

	// ReplaceSchedule deletes the group's entries and inserts the given ones.
	ReplaceSchedule(ctx context.Context, groupID int64, entries []ScheduleEntry) ([]ScheduleEntry, error)

	// CountEmployees counts every employee row referencing the group, active or not.
	CountEmployees(ctx context.Context, groupID int64) (int64, error)
}
