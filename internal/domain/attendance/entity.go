package attendance

import "time"

type Action string

const (
	ActionEntrada Action = "entrada"
	ActionSalida  Action = "salida"
)

func (a Action) IsValid() bool {
	return a == ActionEntrada || a == ActionSalida
}

// Event is a single clock punch. Events are never updated.
type Event struct {
	ID         int64
	EmployeeID int64
	Action     Action
	Timestamp  time.Time
}

// Activity is an Event joined with the employee it belongs to.
type Activity struct {
	Event
	FirstName string
	LastName  string
	Cedula    string
	GroupName string
}
