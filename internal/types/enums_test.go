package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatus(t *testing.T) {
	for i, s := range ProjectStatuses {
		assert.True(t, s.IsValid())
		assert.Equal(t, i, s.Index())
	}

	assert.False(t, ProjectStatus("Done").IsValid())
	assert.Equal(t, -1, ProjectStatus("Done").Index())
	assert.Equal(t, "En Producción", StatusEnProduccion.Label())
	assert.Equal(t, "Done", ProjectStatus("Done").Label())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole("owner"))
}
