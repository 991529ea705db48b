package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/nivecher/meal-expense-tracker-sub003/internal/config/server"
	"github.com/nivecher/meal-expense-tracker-sub003/internal/server"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/store"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/log"
)

// MealTrackAgent runs the web frontend and its metadata store as one
// long-lived process.
type MealTrackAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg    *config.BaseServerConfig
	sc     *container.ServiceContainer
	log    log.LoggerService
	store  *store.SQLiteStore
	server *server.Server
}

func NewAgent(cfg *config.BaseServerConfig) *MealTrackAgent {
	return &MealTrackAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("mealtrack", cfg.Log),
	}
}

func (mta *MealTrackAgent) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	mta.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](mta.sc,
		container.With[log.LoggerService](),
		container.WithInstance(mta.log)))

	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: mta.cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata store: %w", err)
	}
	if err := st.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect metadata store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate metadata store: %w", err)
	}
	mta.store = st

	mta.log.Debug("Registering 'ExpenseStore'...")
	errs.Add(container.Register[store.SQLiteStore](mta.sc,
		container.With[store.ExpenseStore](),
		container.WithInstance(mta.store)))

	mta.server = server.NewServer(mta.cfg, mta.store, mta.log.Named("http"))

	mta.log.Debug("Registering 'Server'...")
	errs.Add(container.Register[server.Server](mta.sc,
		container.WithInstance(mta.server)))

	return errs.Errors()
}

func (mta *MealTrackAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	mta.mutex.Lock()

	if err := mta.setupServices(ctx); err != nil {
		mta.mutex.Unlock()
		return err
	}

	mta.mutex.Unlock()

	mta.wait.Add(1)
	go func() {
		defer mta.wait.Done()
		if err := mta.server.Start(); err != nil {
			mta.log.Error("HTTP server stopped: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	timeout, err := time.ParseDuration(mta.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()

	if err := mta.server.Shutdown(shutdown); err != nil {
		mta.log.Error("failed to shut down HTTP server: %v", err)
	}

	if err := mta.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if err := mta.store.Close(); err != nil {
		mta.log.Error("failed to close metadata store: %v", err)
	}

	mta.wait.Wait()
	return nil
}
