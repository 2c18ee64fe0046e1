//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

func startPostgres(t *testing.T) *gorm.DB {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=tracker",
			"POSTGRES_PASSWORD=tracker",
			"POSTGRES_DB=tracker",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(300)

	dsn := fmt.Sprintf("host=localhost port=%s user=tracker password=tracker dbname=tracker sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 2 * time.Minute
	require.NoError(t, pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}))

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func TestPostgres_TaskListAndUserUniqueness(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)

	for _, id := range []string{"alice", "bob", "carol"} {
		require.NoError(t, users.Create(ctx, &model.User{ID: id}))
	}
	seedTasks(t, tasks)

	found, err := tasks.List(ctx, TaskFilter{Search: "login", SortBy: "targetCompletionDate", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Fix Login bug", found[0].Title)
	require.NotNil(t, found[0].AssignedTo)
	assert.Equal(t, "bob", found[0].AssignedTo.ID)

	from, to := day(2024, 1, 31), day(2024, 1, 31)
	found, err = tasks.List(ctx, TaskFilter{TargetDate: DateRange{From: &from, To: &to}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, constants.StatusCompleted, found[0].Status)

	employeeID := "20000"
	alice, err := users.FindByID(ctx, "alice")
	require.NoError(t, err)
	alice.EmployeeID = &employeeID
	require.NoError(t, users.Save(ctx, alice))

	bob, err := users.FindByID(ctx, "bob")
	require.NoError(t, err)
	bob.EmployeeID = &employeeID
	assert.ErrorIs(t, users.Save(ctx, bob), gorm.ErrDuplicatedKey)
}
