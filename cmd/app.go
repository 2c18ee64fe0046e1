package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/identity"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/sequence"
	"task-tracker.com/task-tracker/internal/services"
	"task-tracker.com/task-tracker/internal/storage"
	"task-tracker.com/task-tracker/pkg/logger"
)

const employeeIDSequenceName = "employee_id"

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	db       *gorm.DB
	provider *identity.LocalProvider
	uploader *storage.LocalUploader
	tasks    *services.TaskService
	users    *services.UserService
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func loadConfigAndLogger() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func openDatabase(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	if err := a.wire(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire() error {
	db, err := openDatabase(a.cfg, a.log)
	if err != nil {
		return err
	}
	a.db = db
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)

	a.provider, err = identity.NewLocalProvider(db, identity.LocalOptions{
		Secret:         []byte(a.cfg.AuthSecret),
		TokenTTL:       time.Duration(a.cfg.AuthTokenTTLMinutes) * time.Minute,
		AllowUIDTokens: a.cfg.AuthAllowUIDTokens,
	})
	if err != nil {
		return err
	}
	if a.cfg.AuthAllowUIDTokens {
		a.log.Warn("uid credentials are enabled; do not use this in production")
	}

	a.uploader, err = storage.NewLocalUploader(a.cfg.UploadDir, a.cfg.UploadBaseURL, int64(a.cfg.UploadMaxMB)<<20)
	if err != nil {
		return err
	}

	employeeIDs, err := a.employeeIDSequence(users)
	if err != nil {
		return err
	}

	a.tasks = services.NewTaskService(tasks, users, a.uploader, a.log.Named("tasks"))
	a.users = services.NewUserService(
		users,
		services.NewRolePolicy(users),
		a.provider,
		a.uploader,
		employeeIDs,
		services.UserServiceOptions{DefaultPassword: a.cfg.DefaultUserPassword},
		a.log.Named("users"),
	)
	return nil
}

// employeeIDSequence uses Redis when it is configured and the database
// otherwise.
func (a *app) employeeIDSequence(users *repository.UserRepository) (sequence.Sequence, error) {
	seed := services.EmployeeIDSeed(users, int64(a.cfg.EmployeeIDStart))

	if a.cfg.RedisAddr == "" {
		a.log.Info("employee ids allocated from the database")
		return sequence.NewDBSequence(a.db, employeeIDSequenceName, seed), nil
	}

	client, err := config.NewRedisClient(context.Background(), a.cfg.RedisAddr, 5*time.Second)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)

	a.log.Info("employee ids allocated from redis",
		zap.String("addr", a.cfg.RedisAddr),
		zap.String("key", a.cfg.RedisSequenceKey),
	)
	return sequence.NewRedisSequence(client, a.cfg.RedisSequenceKey, seed), nil
}
