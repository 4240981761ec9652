// Command seed fills a development database with fake staff and a few
// weeks of clock events so reports have something to show.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/johangly/gpu/internal/config"
	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/fixtures"
	"github.com/johangly/gpu/internal/pkg/database"
	"github.com/johangly/gpu/internal/repository/postgresql"
	employeeService "github.com/johangly/gpu/internal/service/employee"
)

type options struct {
	employees   int
	days        int
	absenceRate float64
	seed        uint64
}

func main() {
	var opts options
	flag.IntVar(&opts.employees, "employees", 20, "number of employees to create")
	flag.IntVar(&opts.days, "days", 30, "days of history to generate, ending yesterday")
	flag.Float64Var(&opts.absenceRate, "absence", 0.1, "probability that a scheduled employee misses a day")
	flag.Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed>>1))
	loc := cfg.Location()

	groupRepo := postgresql.NewGroupRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employees := employeeService.NewEmployeeService(employeeRepo, groupRepo)

	var scheduled []group.Group
	for _, name := range []string{fixtures.GroupDocente, fixtures.GroupObrero} {
		g, err := groupRepo.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("group %s not found, run initdb first: %w", name, err)
		}
		scheduled = append(scheduled, g)
	}

	var staff []employee.EmployeeResponse
	for len(staff) < opts.employees {
		g := scheduled[rng.IntN(len(scheduled))]
		created, err := employees.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			Cedula:    fmt.Sprintf("V%08d", 10_000_000+rng.IntN(20_000_000)),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			GroupID:   g.ID,
		})
		if errors.Is(err, employee.ErrCedulaExists) {
			continue
		}
		if err != nil {
			return err
		}
		staff = append(staff, created)
	}
	slog.Info("employees created", "count", len(staff))

	byGroup := make(map[int64]group.Group, len(scheduled))
	for _, g := range scheduled {
		byGroup[g.ID] = g
	}

	today := time.Now().In(loc)
	first := time.Date(today.Year(), today.Month(), today.Day()-opts.days, 0, 0, 0, 0, loc)
	events := 0
	for d := 0; d < opts.days; d++ {
		date := first.AddDate(0, 0, d)
		for _, e := range staff {
			for _, ev := range simulateDay(rng, byGroup[e.GroupID], e.ID, date, opts.absenceRate) {
				if _, err := attendanceRepo.Create(ctx, ev); err != nil {
					return err
				}
				events++
			}
		}
	}

	slog.Info("attendance history generated", "days", opts.days, "events", events)
	return nil
}

// simulateDay produces the punches of one employee on date: none when the
// group does not work that day or the employee is absent, otherwise an
// entrada around the start time and, most of the time, a salida around the end.
func simulateDay(rng *rand.Rand, g group.Group, employeeID int64, date time.Time, absenceRate float64) []attendance.Event {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	var entry *group.ScheduleEntry
	for i := range g.Schedule {
		if g.Schedule[i].DayOfWeek == weekday {
			entry = &g.Schedule[i]
			break
		}
	}
	if entry == nil || rng.Float64() < absenceRate {
		return nil
	}

	start := clockOn(date, entry.StartTime).Add(time.Duration(rng.IntN(31)-15) * time.Minute)
	events := []attendance.Event{{EmployeeID: employeeID, Action: attendance.ActionEntrada, Timestamp: start}}

	// one in twenty forgets to clock out
	if rng.IntN(20) == 0 {
		return events
	}
	end := clockOn(date, entry.EndTime).Add(time.Duration(rng.IntN(46)-5) * time.Minute)
	return append(events, attendance.Event{EmployeeID: employeeID, Action: attendance.ActionSalida, Timestamp: end})
}

func clockOn(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
