package service

import (
	"context"
	"testing"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/config"
	"github.com/Marga-Ghale/creativa-crm/internal/notification"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/repository/memory"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	cfg   *config.Config
	repos *repository.Repositories
	svcs  *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryHours: 168, Environment: "test"}
	repos := memory.NewStore().Repositories()
	notifier := notification.NewService(repos.ProjectRepo, repos.LinkRepo, nil, false)
	return &fixture{
		cfg:   cfg,
		repos: repos,
		svcs: NewServices(&ServiceDeps{
			Config:   cfg,
			Repos:    repos,
			Notifier: notifier,
		}),
	}
}

func (f *fixture) client(t *testing.T, name string, email *string) *repository.Client {
	t.Helper()
	c, err := f.svcs.Client.Create(context.Background(), ClientInput{Name: name, Email: email})
	require.NoError(t, err)
	return c
}

func (f *fixture) project(t *testing.T, clientID, name string, status types.ProjectStatus) *repository.Project {
	t.Helper()
	p, err := f.svcs.Project.Create(context.Background(), "actor", ProjectInput{
		ClientID: clientID, Name: name, Status: status,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) user(t *testing.T, email, password, role string) *repository.User {
	t.Helper()
	u, err := f.svcs.User.Create(context.Background(), "Test", email, password, role)
	require.NoError(t, err)
	return u
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return &d
}
