// Command initdb creates the schema, the default staff groups and the
// first admin account. It is safe to run more than once.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/johangly/gpu/internal/config"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/fixtures"
	"github.com/johangly/gpu/internal/pkg/database"
	"github.com/johangly/gpu/internal/repository/postgresql"
	employeeService "github.com/johangly/gpu/internal/service/employee"
	groupService "github.com/johangly/gpu/internal/service/group"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("initdb failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	slog.Info("schema ready", "database", cfg.Database.Name)

	groupRepo := postgresql.NewGroupRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	groups := groupService.NewGroupService(postgresql.NewTransactor(db), groupRepo)
	employees := employeeService.NewEmployeeService(employeeRepo, groupRepo)

	groupIDs := make(map[string]int64)
	for _, req := range fixtures.GetDefaultGroups() {
		existing, err := groupRepo.GetByName(ctx, req.Name)
		if err == nil {
			groupIDs[req.Name] = existing.ID
			continue
		}
		if !errors.Is(err, group.ErrGroupNotFound) {
			return err
		}

		created, err := groups.CreateGroup(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create group %s: %w", req.Name, err)
		}
		groupIDs[req.Name] = created.ID
		slog.Info("group created", "name", created.Name, "programado", created.IsScheduled)
	}

	admin := cfg.Admin
	if _, err := employeeRepo.GetByUsername(ctx, admin.User); err == nil {
		slog.Info("admin account already exists", "usuario", admin.User)
		return nil
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}

	created, err := employees.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Cedula:    admin.Cedula,
		FirstName: admin.Name,
		LastName:  admin.LastName,
		GroupID:   groupIDs[fixtures.GroupAdministrativo],
		Username:  &admin.User,
		Password:  &admin.Password,
		Role:      employee.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("admin account created", "id", created.ID, "usuario", admin.User)
	return nil
}
