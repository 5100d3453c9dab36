package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/preranah7/archweekly/internal/client/storage"
	"github.com/preranah7/archweekly/internal/logging"
)

// StorageTokenSource reads the bearer token from durable storage on every
// call, so requests made before the Store hydrates still carry it.
type StorageTokenSource struct {
	repo   storage.Repository
	logger logging.Logger
}

func NewStorageTokenSource(repo storage.Repository, logger logging.Logger) *StorageTokenSource {
	if logger == nil {
		logger = logging.Nop()
	}
	return &StorageTokenSource{repo: repo, logger: logger}
}

// Token returns the persisted token, or "" if there is none. A corrupt
// record is purged and yields "" without an error.
func (s *StorageTokenSource) Token(ctx context.Context) (string, error) {
	rec, ok, err := loadRecord(ctx, s.repo, s.logger)
	if err != nil || !ok {
		return "", err
	}
	return rec.Token(), nil
}

// TokenExpiry returns the "exp" claim of a JWT without verifying its
// signature. It is for display only.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
