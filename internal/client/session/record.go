package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/storage"
	"github.com/preranah7/archweekly/internal/logging"
)

// StorageKey is the durable storage key of the persisted session.
const StorageKey = "auth-storage"

// recordVersion is written with every record. Records of another
// version are still read; the layout has not changed since version 0.
const recordVersion = 0

var ErrCorruptRecord = errors.New("corrupt session record")

// Record is the persisted subset of the session. Null token and user are
// written as JSON null.
type Record struct {
	State   RecordState `json:"state"`
	Version int         `json:"version"`
}

type RecordState struct {
	Token *string      `json:"token"`
	User  *models.User `json:"user"`
}

func newRecord(token string, user *models.User) Record {
	rec := Record{Version: recordVersion}
	if token != "" {
		rec.State.Token = &token
	}
	if user != nil {
		u := *user
		rec.State.User = &u
	}
	return rec
}

// Token returns the stored token or "".
func (r Record) Token() string {
	if r.State.Token == nil {
		return ""
	}
	return *r.State.Token
}

func EncodeRecord(token string, user *models.User) ([]byte, error) {
	return json.Marshal(newRecord(token, user))
}

// DecodeRecord parses a stored record. Anything that is not a JSON object
// with a "state" object yields ErrCorruptRecord.
func DecodeRecord(data []byte) (Record, error) {
	var raw struct {
		State   *RecordState `json:"state"`
		Version int          `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if raw.State == nil {
		return Record{}, fmt.Errorf("%w: missing state", ErrCorruptRecord)
	}
	return Record{State: *raw.State, Version: raw.Version}, nil
}

// loadRecord reads the record from repo. A missing record yields ok=false;
// a corrupt one is deleted, logged and also yields ok=false.
func loadRecord(ctx context.Context, repo storage.Repository, logger logging.Logger) (Record, bool, error) {
	data, err := repo.Get(ctx, StorageKey)
	if err != nil || data == nil {
		return Record{}, false, err
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		logger.Warn(ctx, "dropping corrupt session record", "error", err)
		if err := repo.Delete(ctx, StorageKey); err != nil {
			return Record{}, false, fmt.Errorf("purge corrupt record: %w", err)
		}
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Purge deletes the persisted session record.
func Purge(ctx context.Context, repo storage.Repository) error {
	return repo.Delete(ctx, StorageKey)
}
