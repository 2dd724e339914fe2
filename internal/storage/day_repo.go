package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/errors"
	"github.com/mwhitford/daybook/internal/logging"
	"github.com/mwhitford/daybook/internal/migrate"
	"github.com/mwhitford/daybook/internal/model"
)

// DayRepo provides operations for day records and their sync metadata.
//
// The normal write path stamps the record's local-updated timestamp with
// wall-clock time; the sync write path stamps it with the remote row's
// timestamp instead, so a record that just arrived from the server is
// indistinguishable on the next pass from "already synced at that server
// time". Record and stamp always move in one transaction.
type DayRepo struct {
	db *DB
}

// NewDayRepo creates a new day record repository.
func NewDayRepo(db *DB) *DayRepo {
	return &DayRepo{db: db}
}

// Get retrieves the record for a date key, upgraded to the current
// schema and merged over the empty-record defaults. A missing key yields
// a fresh empty record; an unreadable blob degrades to empty as well.
// It only fails on store errors or a malformed date key.
func (r *DayRepo) Get(dateKey string) (*model.DayRecord, error) {
	if !dates.IsValid(dateKey) {
		return nil, errors.Wrapf(errors.ErrInvalidDateKey, "%q", dateKey)
	}

	key := model.GenerateDayKey(dateKey)
	raw, err := r.db.GetBytes(key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			rec := model.NewEmptyDay()
			rec.SetKey(key)
			return rec, nil
		}
		return nil, errors.NewStoreError("read", key, err)
	}

	rec, err := migrate.Day(key, raw)
	if err != nil {
		// Unreadable even after migration: treat as never logged.
		logging.Warn("unreadable day record, treating as empty",
			logging.KeyDateKey, dateKey, logging.KeyError, err.Error())
	}
	rec.SetKey(key)
	return rec, nil
}

// Put persists the record and stamps its sync metadata with the current
// wall-clock time, atomically with respect to a concurrent read.
func (r *DayRepo) Put(dateKey string, rec *model.DayRecord) error {
	return r.put(dateKey, rec, time.Now().UnixMilli())
}

// PutFromSync persists a record that arrived from the server, stamping
// its sync metadata with the remote row's timestamp instead of local
// wall-clock time. This is the crux of idempotent re-sync.
func (r *DayRepo) PutFromSync(dateKey string, rec *model.DayRecord, remoteMillis int64) error {
	return r.put(dateKey, rec, remoteMillis)
}

func (r *DayRepo) put(dateKey string, rec *model.DayRecord, stampMillis int64) error {
	if !dates.IsValid(dateKey) {
		return errors.Wrapf(errors.ErrInvalidDateKey, "%q", dateKey)
	}

	key := model.GenerateDayKey(dateKey)
	rec.SetKey(key)
	rec.SchemaVersion = model.DaySchemaVersion

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewStoreError("encode", key, err)
	}
	stamp := []byte(strconv.FormatInt(stampMillis, 10))

	err = r.db.Badger().Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		return txn.Set([]byte(model.GenerateSyncMetaKey(dateKey)), stamp)
	})
	if err != nil {
		return errors.NewStoreError("write", key, err)
	}
	return nil
}

// Keys enumerates every date key with a stored record, filtered to the
// YYYY-MM-DD shape to defend against unrelated keys in the namespace.
func (r *DayRepo) Keys() ([]string, error) {
	prefix := model.PrefixDay + ":"
	stored, err := r.db.ListByPrefix(prefix)
	if err != nil {
		return nil, errors.NewStoreError("list", prefix, err)
	}

	keys := make([]string, 0, len(stored))
	for _, k := range stored {
		dateKey := strings.TrimPrefix(k, prefix)
		if dates.IsValid(dateKey) {
			keys = append(keys, dateKey)
		}
	}
	return keys, nil
}

// LocalUpdatedAt returns the local last-modified timestamp for a date
// key, or ok=false if the key has never been stamped.
func (r *DayRepo) LocalUpdatedAt(dateKey string) (int64, bool, error) {
	raw, err := r.db.GetBytes(model.GenerateSyncMetaKey(dateKey))
	if err != nil {
		if IsErrKeyNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.NewStoreError("read", model.GenerateSyncMetaKey(dateKey), err)
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// A corrupt stamp behaves like no stamp at all.
		return 0, false, nil
	}
	return millis, true, nil
}

// Reset overwrites the record for a date key with a fresh empty one and
// clears its sync metadata. This is the only way a record is ever
// "deleted"; nothing propagates the blanking to the remote side.
func (r *DayRepo) Reset(dateKey string) error {
	if !dates.IsValid(dateKey) {
		return errors.Wrapf(errors.ErrInvalidDateKey, "%q", dateKey)
	}

	key := model.GenerateDayKey(dateKey)
	rec := model.NewEmptyDay()
	rec.SetKey(key)
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewStoreError("encode", key, err)
	}

	err = r.db.Badger().Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		return txn.Delete([]byte(model.GenerateSyncMetaKey(dateKey)))
	})
	if err != nil {
		return errors.NewStoreError("reset", key, err)
	}
	return nil
}
