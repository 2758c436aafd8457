package iostore_test

import (
	"context"
	"testing"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	s := newStore(t)

	greek := &schema.Category{Kind: schema.CategoryPantheon, Name: "Greek"}
	require.NoError(s.CreateCategory(ctx, greek))

	dup := &schema.Category{Kind: schema.CategoryPantheon, Name: "greek"}
	err := s.CreateCategory(ctx, dup)
	assert.Equal(errcode.ConflictError, errcode.CodeOf(err))

	// same name in another registry is fine
	arch := &schema.Category{Kind: schema.CategoryArchetype, Name: "Greek"}
	require.NoError(s.CreateCategory(ctx, arch))

	empty := &schema.Category{Kind: schema.CategoryTag, Name: "  "}
	err = s.CreateCategory(ctx, empty)
	assert.Equal(errcode.ValidationError, errcode.CodeOf(err))

	found, err := s.FindCategory(ctx, schema.CategoryPantheon, "GREEK")
	require.NoError(err)
	assert.Equal(greek.ID, found.ID)

	res, err := s.UpdateCategory(ctx, schema.CategoryPantheon, greek.ID,
		func(c *schema.Category) error {
			c.Name = "Hellenic"
			return nil
		})
	require.NoError(err)
	assert.Equal("hellenic", res.NameKey)

	_, err = s.Category(ctx, schema.CategoryArchetype, greek.ID)
	assert.Equal(errcode.NotFoundError, errcode.CodeOf(err))

	deleted, err := s.DeleteCategory(ctx, schema.CategoryPantheon, greek.ID)
	require.NoError(err)
	assert.Equal("Hellenic", deleted.Name)
	_, err = s.DeleteCategory(ctx, schema.CategoryPantheon, greek.ID)
	assert.Equal(errcode.NotFoundError, errcode.CodeOf(err))
}

func TestEnsureCategories(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	names := []string{"Before", "After", "before", ""}
	require.NoError(t, s.EnsureCategories(ctx, schema.CategoryAbilityTiming, names))
	require.NoError(t, s.EnsureCategories(ctx, schema.CategoryAbilityTiming, names))

	res, err := s.Categories(ctx, schema.CategoryAbilityTiming)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "After", res[0].Name)
	assert.Equal(t, "Before", res[1].Name)
}

func TestLocations(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	s := newStore(t)

	loc := &schema.Location{Name: " Olympus ", Pantheon: ptr("Greek"), ImageURL: ptr("")}
	require.NoError(s.CreateLocation(ctx, loc))
	assert.Equal("Olympus", loc.Name)
	assert.Nil(loc.ImageURL)

	res, err := s.UpdateLocation(ctx, loc.ID, func(l *schema.Location) error {
		l.Text = "Home of the gods"
		return nil
	})
	require.NoError(err)
	assert.Equal("Home of the gods", res.Text)

	_, err = s.UpdateLocation(ctx, loc.ID, func(l *schema.Location) error {
		l.Name = ""
		return nil
	})
	assert.Equal(errcode.ValidationError, errcode.CodeOf(err))

	all, err := s.Locations(ctx)
	require.NoError(err)
	require.Len(all, 1)
	assert.Equal("Home of the gods", all[0].Text)

	require.NoError(s.DeleteLocation(ctx, loc.ID))
	_, err = s.Location(ctx, loc.ID)
	assert.Equal(errcode.NotFoundError, errcode.CodeOf(err))
	assert.Equal(errcode.NotFoundError, errcode.CodeOf(s.DeleteLocation(ctx, loc.ID)))
}
