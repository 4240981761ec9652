package fixtures

import (
	"github.com/johangly/gpu/internal/domain/group"
)

// ==========================================
// DEFAULT GROUPS
// ==========================================

const (
	GroupAdministrativo = "Administrativo"
	GroupDocente        = "Docente"
	GroupObrero         = "Obrero"
)

// weekdaySchedule builds a Monday to Friday schedule with the same hours every day.
func weekdaySchedule(start, end string) []group.ScheduleEntryRequest {
	entries := make([]group.ScheduleEntryRequest, 0, 5)
	for day := 1; day <= 5; day++ {
		entries = append(entries, group.ScheduleEntryRequest{
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
		})
	}
	return entries
}

// GetDefaultGroups returns the staff groups a fresh installation starts with.
// Administrativo holds the admin account and is not reconciled.
func GetDefaultGroups() []group.CreateGroupRequest {
	return []group.CreateGroupRequest{
		{Name: GroupAdministrativo, IsScheduled: false},
		{Name: GroupDocente, IsScheduled: true, Schedule: weekdaySchedule("07:00", "13:00")},
		{Name: GroupObrero, IsScheduled: true, Schedule: weekdaySchedule("06:00", "14:00")},
	}
}
