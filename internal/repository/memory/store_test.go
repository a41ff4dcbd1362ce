package memory

import (
	"context"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmailUniquenessIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	require.NoError(t, repos.UserRepo.Create(ctx, &repository.User{Name: "A", Email: "a@test.com", Role: types.RoleUser}))
	err := repos.UserRepo.Create(ctx, &repository.User{Name: "B", Email: "A@Test.com", Role: types.RoleUser})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, repos.ClientRepo.Create(ctx, &repository.Client{Name: "C1", Email: strPtr("c@test.com")}))
	err = repos.ClientRepo.Create(ctx, &repository.Client{Name: "C2", Email: strPtr("C@TEST.com")})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// Clients without email never collide.
	require.NoError(t, repos.ClientRepo.Create(ctx, &repository.Client{Name: "C3"}))
	require.NoError(t, repos.ClientRepo.Create(ctx, &repository.Client{Name: "C4"}))
}

func TestForeignKeysAndCascade(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	err := repos.ProjectRepo.Create(ctx, &repository.Project{ClientID: "missing", Name: "X", Status: types.StatusLead})
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	client := &repository.Client{Name: "Acme"}
	require.NoError(t, repos.ClientRepo.Create(ctx, client))
	project := &repository.Project{ClientID: client.ID, Name: "Spot", Status: types.StatusLead}
	require.NoError(t, repos.ProjectRepo.Create(ctx, project))
	task := &repository.Task{ProjectID: project.ID, Title: "Guion"}
	require.NoError(t, repos.TaskRepo.Create(ctx, task))
	link := &repository.DeliverableLink{ProjectID: project.ID, URL: "https://x.test"}
	require.NoError(t, repos.LinkRepo.Create(ctx, link))

	got, err := repos.ProjectRepo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Acme", got.Client.Name)

	require.NoError(t, repos.ClientRepo.Delete(ctx, client.ID))

	got, err = repos.ProjectRepo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	gotTask, err := repos.TaskRepo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gotTask)
	gotLink, err := repos.LinkRepo.FindByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Nil(t, gotLink)
}

func TestSurveyTotals(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	for _, s := range []*repository.Survey{
		{SatisfactionRating: 5, EaseOfUseRating: 4, WouldRecommend: true},
		{SatisfactionRating: 2, EaseOfUseRating: 3},
	} {
		require.NoError(t, repos.SurveyRepo.Create(ctx, s))
	}

	totals, err := repos.SurveyRepo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Count)
	assert.Equal(t, int64(7), totals.SumSatisfaction)
	assert.Equal(t, int64(1), totals.RecommendCount)

	all, err := repos.SurveyRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].SatisfactionRating)
}

func TestUpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	assert.ErrorIs(t, repos.UserRepo.Update(ctx, &repository.User{ID: "gone", Email: "x@test.com"}), repository.ErrNotFound)
	assert.ErrorIs(t, repos.ClientRepo.Update(ctx, &repository.Client{ID: "gone", Name: "X"}), repository.ErrNotFound)
	assert.ErrorIs(t, repos.ProjectRepo.Update(ctx, &repository.Project{ID: "gone", Name: "X"}), repository.ErrNotFound)
	assert.ErrorIs(t, repos.TaskRepo.Update(ctx, &repository.Task{ID: "gone", Title: "X"}), repository.ErrNotFound)
}
