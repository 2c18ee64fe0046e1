package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	"task-tracker.com/task-tracker/internal/identity"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/sequence"
	"task-tracker.com/task-tracker/internal/storage"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type fakeIdentityProvider struct {
	mu         sync.Mutex
	byEmail    map[string]string
	deleted    []string
	calls      int
	createErr  error
	lastSecret string
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{byEmail: make(map[string]string)}
}

func (f *fakeIdentityProvider) Resolve(ctx context.Context, credential string) (identity.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return identity.Claims{SubjectID: credential}, nil
}

func (f *fakeIdentityProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return "", f.createErr
	}
	uid := "uid-" + email
	f.byEmail[email] = uid
	f.lastSecret = password
	return uid, nil
}

func (f *fakeIdentityProvider) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	uid, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &model.Identity{UID: uid, Email: email}, nil
}

func (f *fakeIdentityProvider) DeleteIdentity(ctx context.Context, subjectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.deleted = append(f.deleted, subjectID)
	return nil
}

func (f *fakeIdentityProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUploader struct {
	mu       sync.Mutex
	prefixes []string
	uploads  int
	err      error
}

func (f *fakeUploader) Upload(ctx context.Context, file storage.File, pathPrefix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	f.prefixes = append(f.prefixes, pathPrefix)
	return fmt.Sprintf("http://files.test/%s/%s", pathPrefix, file.Filename), nil
}

func (f *fakeUploader) UploadMany(ctx context.Context, files []storage.File, pathPrefix string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := f.Upload(ctx, file, pathPrefix)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func testFile(name string) storage.File {
	return storage.File{Filename: name, Size: 1, Content: strings.NewReader("x")}
}

type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	tasks      *repository.TaskRepository
	identities *fakeIdentityProvider
	uploader   *fakeUploader
	taskSvc    *TaskService
	userSvc    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	identities := newFakeIdentityProvider()
	uploader := &fakeUploader{}
	log := zap.NewNop()

	taskSvc := NewTaskService(tasks, users, uploader, log)
	taskSvc.now = func() time.Time { return fixedNow }

	employeeIDs := sequence.NewDBSequence(db, "employee_id", EmployeeIDSeed(users, constants.DefaultEmployeeIDStart))
	userSvc := NewUserService(users, NewRolePolicy(users), identities, uploader, employeeIDs,
		UserServiceOptions{DefaultPassword: "changeme123"}, log)

	return &testEnv{
		db:         db,
		users:      users,
		tasks:      tasks,
		identities: identities,
		uploader:   uploader,
		taskSvc:    taskSvc,
		userSvc:    userSvc,
	}
}

func (e *testEnv) seedUser(t *testing.T, id string, role constants.UserRole) *model.User {
	name := "user " + id
	user := &model.User{ID: id, Name: &name, Role: role, Status: constants.UserStatusActive}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func ptr[T any](v T) *T {
	return &v
}
