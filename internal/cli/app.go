package cli

import (
	"context"

	"go.uber.org/zap"

	"hotel-ob/internal/api"
	"hotel-ob/internal/config"
	"hotel-ob/internal/datastore"
	"hotel-ob/internal/metrics"
	"hotel-ob/internal/orchestration"
)

// App holds the dependencies shared by all commands. Store, Backend and
// Metrics are created from Config on first use unless set beforehand.
type App struct {
	Config  config.Config
	Logger  *zap.SugaredLogger
	Store   datastore.DataStore
	Backend orchestration.Backend
	Metrics *metrics.Recorder

	orch *orchestration.Orchestrator
}

// NewApp creates an App.
func NewApp(cfg config.Config, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{Config: cfg, Logger: logger}
}

// DataStore opens the configured data store.
func (a *App) DataStore(ctx context.Context) (datastore.DataStore, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	ds, err := datastore.NewDataStore(ctx, a.Config.DataStoreConfig())
	if err != nil {
		return nil, err
	}
	if a.Config.IsMemoryMode() {
		a.Logger.Warn("sessions are kept in memory and are lost when the process exits")
	}
	a.Store = ds
	return ds, nil
}

// Orchestrator returns the session orchestrator, wiring its dependencies on
// first use.
func (a *App) Orchestrator(ctx context.Context) (*orchestration.Orchestrator, error) {
	if a.orch != nil {
		return a.orch, nil
	}
	ds, err := a.DataStore(ctx)
	if err != nil {
		return nil, err
	}
	if a.Backend == nil {
		a.Backend = api.NewClient(a.Config.APIURL,
			api.WithToken(a.Config.APIToken),
			api.WithTimeout(a.Config.APITimeout),
		)
	}
	if a.Metrics == nil {
		a.Metrics = metrics.NewRecorder()
	}

	a.orch = orchestration.NewOrchestrator(ds, a.Backend, &orchestration.OrchestratorConfig{
		Permissions: a.Config.WizardPermissions(),
		Logger:      a.Logger,
		Observer:    a.Metrics,
	})
	return a.orch, nil
}

// Close releases the data store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
