// Package app wires the application services together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quadro/internal/auth"
	"quadro/internal/config"
	"quadro/internal/database"
	"quadro/internal/events"
	columnservice "quadro/internal/services/column"
	groupservice "quadro/internal/services/group"
	taskservice "quadro/internal/services/task"
	"quadro/internal/store"
)

// App is the application container: one per process, torn down at exit.
// The UI layer receives it by reference instead of reaching for globals.
type App struct {
	db       *sql.DB
	Repo     *database.Repository
	Notifier *events.Notifier

	Auth          *auth.Service
	GroupService  groupservice.Service
	ColumnService columnservice.Service
	TaskService   taskservice.Service
	Store         *store.Store
}

// New opens the database and constructs every service and the
// synchronization store.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := database.NewRepository(db)
	notifier := events.NewNotifier()

	authSvc := auth.NewService(repo, notifier, cfg.SessionSecret(),
		time.Duration(cfg.Session.TTLHours)*time.Hour, cfg.Session.Path)

	groups := groupservice.NewService(repo, notifier)
	columns := columnservice.NewService(repo, notifier)
	tasks := taskservice.NewService(repo, notifier)

	syncStore := store.New(authSvc, groups, columns, tasks, notifier)
	syncStore.Start(ctx)

	return &App{
		db:            db,
		Repo:          repo,
		Notifier:      notifier,
		Auth:          authSvc,
		GroupService:  groups,
		ColumnService: columns,
		TaskService:   tasks,
		Store:         syncStore,
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	return a.db.Close()
}
