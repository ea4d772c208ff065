package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxAvatarSize is the largest accepted avatar upload.
const MaxAvatarSize = 5 << 20

var (
	ErrAvatarTooLarge    = errors.New("avatar must be 5 MB or smaller")
	ErrAvatarEmpty       = errors.New("avatar file is empty")
	ErrUnsupportedAvatar = errors.New("avatar must be a JPEG, PNG, WebP or GIF image")
	ErrForeignAvatar     = errors.New("avatar is not stored by this service")
)

// avatarTypes maps accepted MIME types to the key extension.
var avatarTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ObjectStore is the object storage used for avatars.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, bool)
}

// Avatars validates and stores card avatar images.
type Avatars struct {
	store ObjectStore
	now   func() time.Time
}

// NewAvatars creates an avatar service over store.
func NewAvatars(store ObjectStore) *Avatars {
	return &Avatars{store: store, now: time.Now}
}

// Upload validates data and stores it under {userID}/avatar-{unix}.{ext}.
// It returns the public URL of the stored object.
func (a *Avatars) Upload(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrAvatarEmpty
	}
	if len(data) > MaxAvatarSize {
		return "", ErrAvatarTooLarge
	}

	mtype := mimetype.Detect(data)
	ext, ok := avatarTypes[mtype.String()]
	if !ok {
		return "", ErrUnsupportedAvatar
	}

	key := fmt.Sprintf("%s/avatar-%d.%s", userID, a.now().Unix(), ext)
	if err := a.store.Put(ctx, key, data, mtype.String()); err != nil {
		return "", err
	}
	return a.store.PublicURL(key), nil
}

// Remove deletes the object behind an avatar URL. URLs not produced by
// this service are left alone.
func (a *Avatars) Remove(ctx context.Context, avatarURL string) error {
	key, ok := a.store.KeyFromURL(avatarURL)
	if !ok || key == "" {
		return ErrForeignAvatar
	}
	return a.store.Remove(ctx, key)
}
