// Package media coordinates the lifecycle of remote-hosted assets attached to
// content records. Every remote operation is best-effort: the database record
// is the authoritative state, and a dangling remote asset is an accepted,
// non-fatal inconsistency. No two-phase commit exists.
package media

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/folioworks/core/internal/models"
	"go.uber.org/zap"
)

// Asset is the result of an upload: a stable identifier plus a public URL.
// PublicID is the authoritative key for later deletion.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// SignedUpload is a short-lived credential letting the client upload directly
// to the media host without ever holding the long-lived secret.
type SignedUpload struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	PublicID  string            `json:"publicId"`
	PublicURL string            `json:"publicUrl"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Store is the remote media host boundary.
type Store interface {
	Upload(ctx context.Context, name string, payload []byte, contentType string) (Asset, error)
	Delete(ctx context.Context, publicID string) error
	PresignUpload(ctx context.Context, name string, contentType string) (SignedUpload, error)
	List(ctx context.Context) ([]string, error)
}

// Coordinator applies the attach/replace/release rules on top of a Store.
type Coordinator struct {
	store Store
	log   *zap.Logger
}

func NewCoordinator(store Store, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{store: store, log: log}
}

// Store exposes the underlying media host client.
func (co *Coordinator) Store() Store { return co.store }

// Release removes the remote asset behind ref, best-effort. A failure is
// logged and swallowed; it must never block the caller's database operation.
func (co *Coordinator) Release(ctx context.Context, ref models.MediaRef) {
	if co == nil || co.store == nil || !ref.Present() {
		return
	}
	publicID := ref.PublicID
	if publicID == "" {
		// Lossy fallback for legacy records that never stored an identifier.
		publicID = PublicIDFromURL(ref.URL)
		if publicID == "" {
			co.log.Warn("media release skipped: no public id and url not derivable",
				zap.String("url", ref.URL))
			return
		}
		co.log.Warn("media release using url-derived public id (best-effort only)",
			zap.String("url", ref.URL), zap.String("derived", publicID))
	}
	if err := co.store.Delete(ctx, publicID); err != nil {
		co.log.Warn("media release failed (ignored)",
			zap.String("publicId", publicID), zap.Error(err))
	}
}

// ReplaceIfChanged releases the old asset when a record's attachment is being
// swapped for a different one. The release is non-fatal: the new attachment
// is persisted regardless. Two refs pointing at the same URL are the same
// asset even when one side lacks the stored public id, so a legacy re-submit
// of the current URL never deletes the asset the record still references.
func (co *Coordinator) ReplaceIfChanged(ctx context.Context, old, updated models.MediaRef) {
	if !old.Present() {
		return
	}
	if old.PublicID != "" && old.PublicID == updated.PublicID {
		return
	}
	if old.URL != "" && old.URL == updated.URL {
		return
	}
	co.Release(ctx, old)
}

// MergeRef resolves an incoming attachment against the stored one. An
// incoming ref without a public id whose URL matches the current ref is the
// same asset re-submitted through a legacy alias; the stored ref keeps its
// authoritative public id in that case.
func MergeRef(current, incoming models.MediaRef) models.MediaRef {
	if incoming.PublicID == "" && incoming.URL == current.URL {
		return current
	}
	return incoming
}

// PublicIDFromURL guesses the asset identifier from the last path segment of
// its URL. It is lossy and never authoritative: use it only when no stored
// public id exists.
func PublicIDFromURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	if decoded, err := url.PathUnescape(last); err == nil {
		return decoded
	}
	return last
}
