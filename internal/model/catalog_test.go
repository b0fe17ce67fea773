package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsValid(t *testing.T) {
	require.NoError(t, ValidateCatalog())
	assert.Len(t, Catalog(), 3)
}

func TestCatalogSchemas(t *testing.T) {
	patients, ok := SchemaByName("patients")
	require.True(t, ok)
	assert.Equal(t, []string{"first_name", "last_name", "phone"}, patients.RequiredFields())
	assert.Equal(t, []string{"first_name", "last_name", "phone"}, patients.SearchableColumns())

	phone, ok := patients.Field("phone")
	require.True(t, ok)
	assert.True(t, phone.Unique)

	gender, ok := patients.Field("gender")
	require.True(t, ok)
	assert.Equal(t, FieldEnum, gender.Kind)
	assert.Equal(t, Genders, gender.Options)
	assert.False(t, gender.Required)

	blood, ok := patients.Field("blood_type")
	require.True(t, ok)
	assert.Len(t, blood.Options, 8)

	doctors, ok := SchemaByName("doctors")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "specialty"}, doctors.RequiredFields())
	assert.Equal(t, []string{"name", "id"}, doctors.OrderBy)

	staff, ok := SchemaByName("staff")
	require.True(t, ok)
	status, ok := staff.Field("status")
	require.True(t, ok)
	assert.Equal(t, StaffStatusActive, status.Default)

	_, ok = SchemaByName("appointments")
	assert.False(t, ok)
}

func TestModules(t *testing.T) {
	mods := Modules()
	require.Len(t, mods, 9)

	var planned, implemented int
	for _, m := range mods {
		switch m.Status {
		case ModulePlanned:
			planned++
			assert.NotEmpty(t, m.NextSteps)
		case ModuleImplemented:
			implemented++
		}
	}
	assert.Equal(t, 5, planned)
	assert.Equal(t, 4, implemented)

	lab, ok := ModuleBySlug("lab")
	require.True(t, ok)
	assert.Equal(t, "Lab & Investigations", lab.Name)

	_, ok = ModuleBySlug("billing")
	assert.False(t, ok)
}
