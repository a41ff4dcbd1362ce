package service

import (
	"context"
	"testing"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeadRejectsExistingEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.client(t, "Ana", strPtr("ana@example.com"))

	_, err := f.svcs.Client.CreateLead(ctx, ClientInput{
		Name: "Ana Web", Company: strPtr("Acme"), Email: strPtr("ANA@example.com"),
	})
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Este correo ya está registrado en nuestra base de datos.", cerr.Message)

	clients, err := f.svcs.Client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestCreateLeadTagsNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lead, err := f.svcs.Client.CreateLead(ctx, ClientInput{
		Name: "Luis", Company: strPtr("Acme"), Email: strPtr("luis@example.com"), Notes: strPtr("Quiere un video"),
	})
	require.NoError(t, err)
	require.NotNil(t, lead.Notes)
	assert.Equal(t, "[Registro Web] Quiere un video", *lead.Notes)

	bare, err := f.svcs.Client.CreateLead(ctx, ClientInput{
		Name: "Eva", Company: strPtr("Beta"), Email: strPtr("eva@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "[Registro Web] ", *bare.Notes)
}

func TestClientEmptyEmailIsAbsent(t *testing.T) {
	f := newFixture(t)
	a := f.client(t, "A", strPtr(""))
	b := f.client(t, "B", strPtr("  "))
	assert.Nil(t, a.Email)
	assert.Nil(t, b.Email)
}

func TestClientUpdateKeepsUnsentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", strPtr("ana@example.com"))
	f.client(t, "Luis", strPtr("luis@example.com"))

	updated, err := f.svcs.Client.Update(ctx, c.ID, ClientPatch{Phone: strPtr("555-1234")})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "ana@example.com", *updated.Email)
	assert.Equal(t, "555-1234", *updated.Phone)

	_, err = f.svcs.Client.Update(ctx, c.ID, ClientPatch{Email: strPtr("luis@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	cleared, err := f.svcs.Client.Update(ctx, c.ID, ClientPatch{Email: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Email)
}

func TestClientDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "Ana", nil)
	p := f.project(t, c.ID, "Logo", types.StatusLead)
	_, err := f.svcs.Project.AddTask(ctx, p.ID, "Bocetos")
	require.NoError(t, err)

	got, err := f.svcs.Client.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Projects, 1)

	require.NoError(t, f.svcs.Client.Delete(ctx, c.ID))

	_, err = f.svcs.Project.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	tasks, err := f.repos.TaskRepo.FindByProjectIDs(ctx, []string{p.ID})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	assert.ErrorIs(t, f.svcs.Client.Delete(ctx, c.ID), ErrNotFound)
}

func TestClientListNestsProjects(t *testing.T) {
	f := newFixture(t)
	a := f.client(t, "A", nil)
	b := f.client(t, "B", nil)
	f.project(t, a.ID, "A1", types.StatusLead)
	f.project(t, a.ID, "A2", types.StatusEntregado)

	clients, err := f.svcs.Client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)

	byID := map[string][]*repository.Project{}
	for _, c := range clients {
		byID[c.ID] = c.Projects
	}
	assert.Len(t, byID[a.ID], 2)
	assert.Empty(t, byID[b.ID])
}
