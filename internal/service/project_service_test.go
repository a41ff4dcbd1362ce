package service

import (
	"context"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectIsRetrievable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)

	for _, status := range types.ProjectStatuses {
		p, err := f.svcs.Project.Create(ctx, "actor", ProjectInput{
			ClientID: c.ID, Name: "P " + string(status), Status: status, DueDate: mustDate(t, "2026-03-01"),
		})
		require.NoError(t, err)
		assert.True(t, p.Status.IsValid())
		require.NotNil(t, p.Client)
		assert.Equal(t, "Ana", p.Client.Name)

		got, err := f.svcs.Project.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
		assert.Equal(t, "2026-03-01", got.DueDate.Format("2006-01-02"))
	}
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)

	_, err := f.svcs.Project.Create(ctx, "actor", ProjectInput{
		ClientID: "6f1c1f3e-8d0a-4c1e-9c61-2f7a5b0e7a11", Name: "X", Status: types.StatusLead,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "clientId", verr.Field)

	_, err = f.svcs.Project.Create(ctx, "actor", ProjectInput{ClientID: c.ID, Name: "X", Status: "Done"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)

	_, err = f.svcs.Project.Create(ctx, "actor", ProjectInput{ClientID: c.ID, Name: "   ", Status: types.StatusLead})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	p := f.project(t, c.ID, "Spot", types.StatusLead)
	_, err = f.svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{Name: strPtr(" ")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestUpdateProjectIsPartialAndPermissive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p, err := f.svcs.Project.Create(ctx, "actor", ProjectInput{
		ClientID: c.ID, Name: "Video", Status: types.StatusEntregado,
		Notes: strPtr("urgente"), DueDate: mustDate(t, "2026-01-15"),
	})
	require.NoError(t, err)

	// backwards move is allowed
	lead := types.StatusLead
	updated, err := f.svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{Status: &lead})
	require.NoError(t, err)
	assert.Equal(t, types.StatusLead, updated.Status)
	assert.Equal(t, "Video", updated.Name)
	assert.Equal(t, "urgente", *updated.Notes)
	require.NotNil(t, updated.DueDate)

	cleared, err := f.svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{DueDateSet: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)

	other := f.client(t, "Luis", nil)
	moved, err := f.svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{ClientID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "Luis", moved.Client.Name)

	bogus := "6f1c1f3e-8d0a-4c1e-9c61-2f7a5b0e7a11"
	_, err = f.svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{ClientID: &bogus})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.svcs.Project.Update(ctx, "actor", "missing", ProjectPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProjectRemovesChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Video", types.StatusEnProduccion)
	keep := f.project(t, c.ID, "Logo", types.StatusLead)

	_, err := f.svcs.Project.AddTask(ctx, p.ID, "Guion")
	require.NoError(t, err)
	_, err = f.svcs.Project.AddLink(ctx, p.ID, nil, "https://drive.example.com/x")
	require.NoError(t, err)
	_, err = f.svcs.Project.AddTask(ctx, keep.ID, "Paleta")
	require.NoError(t, err)

	require.NoError(t, f.svcs.Project.Delete(ctx, "actor", p.ID))

	tasks, err := f.repos.TaskRepo.FindByProjectIDs(ctx, []string{p.ID})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	links, err := f.repos.LinkRepo.FindByProjectIDs(ctx, []string{p.ID})
	require.NoError(t, err)
	assert.Empty(t, links)

	kept, err := f.svcs.Project.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Tasks, 1)

	assert.ErrorIs(t, f.svcs.Project.Delete(ctx, "actor", p.ID), ErrNotFound)
}

func TestProjectChildrenOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Video", types.StatusLead)

	for _, title := range []string{"uno", "dos", "tres"} {
		_, err := f.svcs.Project.AddTask(ctx, p.ID, title)
		require.NoError(t, err)
	}
	for _, url := range []string{"https://a.test", "https://b.test"} {
		_, err := f.svcs.Project.AddLink(ctx, p.ID, strPtr("  "), url)
		require.NoError(t, err)
	}

	got, err := f.svcs.Project.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 3)
	assert.Equal(t, "uno", got.Tasks[0].Title)
	assert.Equal(t, "tres", got.Tasks[2].Title)
	require.Len(t, got.Links, 2)
	assert.Equal(t, "https://b.test", got.Links[0].URL)
	assert.Nil(t, got.Links[0].Label)
}

func TestAddTaskAndLinkValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Video", types.StatusLead)

	var verr *ValidationError
	_, err := f.svcs.Project.AddTask(ctx, p.ID, "  ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = f.svcs.Project.AddLink(ctx, p.ID, nil, "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)

	_, err = f.svcs.Project.AddTask(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.client(t, "A", nil)
	b := f.client(t, "B", nil)
	f.project(t, a.ID, "A-lead", types.StatusLead)
	f.project(t, a.ID, "A-done", types.StatusEntregado)
	f.project(t, b.ID, "B-lead", types.StatusLead)

	all, err := f.svcs.Project.List(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "B-lead", all[0].Name)

	leads, err := f.svcs.Project.List(ctx, repository.ProjectFilter{Status: types.StatusLead})
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	aLeads, err := f.svcs.Project.List(ctx, repository.ProjectFilter{Status: types.StatusLead, ClientID: a.ID})
	require.NoError(t, err)
	require.Len(t, aLeads, 1)
	assert.Equal(t, "A-lead", aLeads[0].Name)
	assert.NotNil(t, aLeads[0].Tasks)

	_, err = f.svcs.Project.List(ctx, repository.ProjectFilter{Status: "Done"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNotifyWithoutClientEmailSendsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Video", types.StatusEntregado)

	_, err := f.svcs.Project.Notify(ctx, p.ID)
	assert.ErrorIs(t, err, ErrClientEmailMissing)

	_, err = f.svcs.Project.Notify(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	withEmail := f.client(t, "Luis", strPtr("luis@example.com"))
	p2 := f.project(t, withEmail.ID, "Logo", types.StatusEntregado)
	res, err := f.svcs.Project.Notify(ctx, p2.ID)
	require.NoError(t, err)
	assert.True(t, res.Simulated)
}

// vanishingProjects deletes a project right after it has been read, as a
// concurrent delete between read and write would.
type vanishingProjects struct {
	repository.ProjectRepository
}

func (v vanishingProjects) FindByID(ctx context.Context, id string) (*repository.Project, error) {
	p, err := v.ProjectRepository.FindByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	return p, v.ProjectRepository.Delete(ctx, id)
}

func TestUpdateProjectDeletedConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Spot", types.StatusLead)

	repos := *f.repos
	repos.ProjectRepo = vanishingProjects{f.repos.ProjectRepo}
	svcs := NewServices(&ServiceDeps{Config: f.cfg, Repos: &repos})

	status := types.StatusEntregado
	_, err := svcs.Project.Update(ctx, "actor", p.ID, ProjectPatch{Status: &status})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, msgProjectNotFound, nf.Message)
}
