package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/email"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/repository/memory"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	configured bool
	err        error
	to         []string
	data       []email.ProjectDeliveredData
}

func (m *fakeMailer) Configured() bool { return m.configured }

func (m *fakeMailer) SendProjectDelivered(_ context.Context, to string, data email.ProjectDeliveredData) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.data = append(m.data, data)
	return nil
}

func strPtr(s string) *string { return &s }

func seedProject(t *testing.T, repos *repository.Repositories, clientEmail *string) *repository.Project {
	t.Helper()
	ctx := context.Background()

	client := &repository.Client{Name: "Ana", Email: clientEmail}
	require.NoError(t, repos.ClientRepo.Create(ctx, client))

	project := &repository.Project{ClientID: client.ID, Name: "Video", Status: types.StatusEntregado}
	require.NoError(t, repos.ProjectRepo.Create(ctx, project))
	return project
}

func TestNotifySendsOneEmailWithLinks(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	project := seedProject(t, repos, strPtr("ana@example.com"))

	require.NoError(t, repos.LinkRepo.Create(ctx, &repository.DeliverableLink{ProjectID: project.ID, URL: "https://a.test"}))
	require.NoError(t, repos.LinkRepo.Create(ctx, &repository.DeliverableLink{ProjectID: project.ID, Label: strPtr("Drive"), URL: "https://b.test"}))

	mailer := &fakeMailer{configured: true}
	svc := NewService(repos.ProjectRepo, repos.LinkRepo, mailer, true)

	res, err := svc.NotifyProjectDelivered(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, MessageSent, res.Message)
	assert.False(t, res.Simulated)

	require.Equal(t, []string{"ana@example.com"}, mailer.to)
	links := mailer.data[0].Links
	require.Len(t, links, 2)
	// newest first
	assert.Equal(t, email.DeliveryLink{Label: "Drive", URL: "https://b.test"}, links[0])
	assert.Equal(t, email.DeliveryLink{Label: "Link", URL: "https://a.test"}, links[1])
}

func TestNotifyWithoutClientEmail(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	mailer := &fakeMailer{configured: true}
	svc := NewService(repos.ProjectRepo, repos.LinkRepo, mailer, false)

	for _, e := range []*string{nil, strPtr("")} {
		project := seedProject(t, repos, e)
		_, err := svc.NotifyProjectDelivered(ctx, project.ID)
		assert.ErrorIs(t, err, ErrClientEmailMissing)
	}
	assert.Empty(t, mailer.to)
}

func TestNotifyUnknownProject(t *testing.T) {
	repos := memory.NewStore().Repositories()
	svc := NewService(repos.ProjectRepo, repos.LinkRepo, &fakeMailer{configured: true}, false)

	_, err := svc.NotifyProjectDelivered(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestNotifyUnconfiguredTransport(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	project := seedProject(t, repos, strPtr("ana@example.com"))
	mailer := &fakeMailer{}

	dev := NewService(repos.ProjectRepo, repos.LinkRepo, mailer, false)
	res, err := dev.NotifyProjectDelivered(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Equal(t, MessageSimulated, res.Message)

	prod := NewService(repos.ProjectRepo, repos.LinkRepo, mailer, true)
	_, err = prod.NotifyProjectDelivered(ctx, project.ID)
	assert.ErrorIs(t, err, ErrEmailNotConfigured)

	assert.Empty(t, mailer.to)
}

func TestNotifyTransportFailure(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	project := seedProject(t, repos, strPtr("ana@example.com"))

	boom := errors.New("smtp down")
	svc := NewService(repos.ProjectRepo, repos.LinkRepo, &fakeMailer{configured: true, err: boom}, false)

	_, err := svc.NotifyProjectDelivered(ctx, project.ID)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}
