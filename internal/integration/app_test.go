package integration_test

import (
	"log/slog"
	"os"

	"github.com/cinehall/cinehall/internal/app"
	"github.com/cinehall/cinehall/internal/repository"
	"github.com/cinehall/cinehall/internal/scheduler"
	"github.com/cinehall/cinehall/internal/seating"
	appvalidator "github.com/cinehall/cinehall/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App *app.Application
	DB  *pgxpool.Pool
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionRepo := repository.NewPostgresSessionRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	hallRepo := repository.NewPostgresHallRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		hallRepo,
		scheduler.New(sessionRepo, hallRepo),
		seating.New(seatRepo, hallRepo),
	)

	return &TestApp{
		App: application,
		DB:  db,
	}, nil
}
