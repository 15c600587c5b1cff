package media

import (
	"context"
	"errors"
	"testing"

	"github.com/folioworks/core/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStore) Upload(ctx context.Context, name string, payload []byte, contentType string) (Asset, error) {
	return Asset{URL: "https://cdn.example.com/x/" + name, PublicID: "x/" + name}, nil
}

func (f *fakeStore) Delete(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return f.deleteErr
}

func (f *fakeStore) PresignUpload(ctx context.Context, name, contentType string) (SignedUpload, error) {
	return SignedUpload{}, nil
}

func (f *fakeStore) List(ctx context.Context) ([]string, error) { return nil, nil }

func TestReleaseUsesStoredPublicID(t *testing.T) {
	fs := &fakeStore{}
	co := NewCoordinator(fs, nil)
	co.Release(context.Background(), models.MediaRef{
		URL:      "https://cdn.example.com/uploads/other-name.png",
		PublicID: "uploads/real-id.png",
	})
	assert.Equal(t, []string{"uploads/real-id.png"}, fs.deleted)
}

func TestReleaseFallsBackToURLDerivation(t *testing.T) {
	fs := &fakeStore{}
	co := NewCoordinator(fs, nil)
	co.Release(context.Background(), models.MediaRef{
		URL: "https://cdn.example.com/uploads/legacy.png?v=2",
	})
	assert.Equal(t, []string{"legacy.png"}, fs.deleted)
}

func TestReleaseSwallowsStoreFailure(t *testing.T) {
	fs := &fakeStore{deleteErr: errors.New("upstream down")}
	co := NewCoordinator(fs, nil)
	// Must not panic or propagate; the caller's DB delete proceeds regardless.
	co.Release(context.Background(), models.MediaRef{PublicID: "uploads/a.png", URL: "u"})
	assert.Equal(t, []string{"uploads/a.png"}, fs.deleted)
}

func TestReplaceIfChanged(t *testing.T) {
	tests := []struct {
		name        string
		old, next   models.MediaRef
		wantDeleted []string
	}{
		{
			name:        "different asset releases old",
			old:         models.MediaRef{URL: "u1", PublicID: "p1"},
			next:        models.MediaRef{URL: "u2", PublicID: "p2"},
			wantDeleted: []string{"p1"},
		},
		{
			name: "same asset untouched",
			old:  models.MediaRef{URL: "u1", PublicID: "p1"},
			next: models.MediaRef{URL: "u1", PublicID: "p1"},
		},
		{
			name: "no previous asset",
			next: models.MediaRef{URL: "u2", PublicID: "p2"},
		},
		{
			name: "legacy record without id, url unchanged",
			old:  models.MediaRef{URL: "https://cdn.example.com/a.png"},
			next: models.MediaRef{URL: "https://cdn.example.com/a.png"},
		},
		{
			name: "url-only resubmit of stored asset",
			old:  models.MediaRef{URL: "https://cdn.example.com/a.png", PublicID: "uploads/a.png"},
			next: models.MediaRef{URL: "https://cdn.example.com/a.png"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{}
			co := NewCoordinator(fs, nil)
			co.ReplaceIfChanged(context.Background(), tt.old, tt.next)
			if tt.wantDeleted == nil {
				assert.Empty(t, fs.deleted)
			} else {
				assert.Equal(t, tt.wantDeleted, fs.deleted)
			}
		})
	}
}

func TestMergeRef(t *testing.T) {
	stored := models.MediaRef{URL: "https://cdn.example.com/a.png", PublicID: "uploads/a.png"}

	// A url-only resubmit of the current asset keeps the stored public id.
	assert.Equal(t, stored, MergeRef(stored, models.MediaRef{URL: stored.URL}))

	// Anything else wins as submitted.
	next := models.MediaRef{URL: "https://cdn.example.com/b.png"}
	assert.Equal(t, next, MergeRef(stored, next))
	full := models.MediaRef{URL: stored.URL, PublicID: "uploads/renamed.png"}
	assert.Equal(t, full, MergeRef(stored, full))
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/uploads/abc123.png", "abc123.png"},
		{"https://cdn.example.com/abc.png?version=3", "abc.png"},
		{"https://cdn.example.com/a%20b.png", "a b.png"},
		{"https://cdn.example.com/", ""},
		{"", ""},
		{"::not-a-url::", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicIDFromURL(tt.in), "input %q", tt.in)
	}
}
