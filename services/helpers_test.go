package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// newTestRepos opens a private in-memory SQLite store for one test
func newTestRepos(t *testing.T) repository.Repositories {
	t.Helper()
	store, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Repositories()
}

func createUser(t *testing.T, repos repository.Repositories, name, email, role string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Settings: model.DefaultUserSettings(),
	}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
