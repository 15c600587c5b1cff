package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/testutil"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewDB(t), media.NewCoordinator(nil, nil))
}

func TestCreateTrimsFreeText(t *testing.T) {
	s := newService(t)

	p, err := s.Create(context.Background(), &CreatePostDTO{
		Title:   "  First Post  ",
		Body:    "  hello world \n",
		Excerpt: " short ",
	})
	require.NoError(t, err)
	assert.Equal(t, "First Post", p.Title)
	assert.Equal(t, "hello world", p.Body)
	assert.Equal(t, "short", p.Excerpt)
	assert.Equal(t, "first-post", p.Slug)
}

func TestUpdateTrimsBody(t *testing.T) {
	s := newService(t)

	p, err := s.Create(context.Background(), &CreatePostDTO{Title: "Keeper", Body: "original"})
	require.NoError(t, err)

	body := "\t revised body \n"
	got, err := s.Update(context.Background(), p.ID, &UpdatePostDTO{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, "revised body", got.Body)
	assert.Equal(t, "Keeper", got.Title)

	reloaded, err := s.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "revised body", reloaded.Body)
}

func TestUpdateLegacyCoverAliasKeepsStoredID(t *testing.T) {
	s := newService(t)

	cover := "https://cdn.example.com/uploads/c.png"
	p, err := s.Create(context.Background(), &CreatePostDTO{Title: "Covered", Body: "b"})
	require.NoError(t, err)
	p.Cover.URL = cover
	p.Cover.PublicID = "uploads/c.png"
	require.NoError(t, s.db.Save(p).Error)

	got, err := s.Update(context.Background(), p.ID, &UpdatePostDTO{CoverImage: &cover})
	require.NoError(t, err)
	assert.Equal(t, "uploads/c.png", got.Cover.PublicID)
}
