// Package cache persists generation results next to the generated assets so
// that unchanged sources are not rendered again.
//
// A record is valid only when the source hash, the configuration hash and the
// generator's schema version all match exactly. Any read problem is treated as
// a miss; write problems are reported to the caller, who may ignore them.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/faviconbuilder/internal/asset"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/storage"
)

// FileName is the name of the cache record inside an output directory.
const FileName = ".cache"

// Record is the persisted cache file.
type Record struct {
	Hash       string        `json:"hash"`
	Version    string        `json:"version"`
	Result     *asset.Result `json:"result"`
	OptionHash string        `json:"optionHash"`
}

// Matches reports whether the record was written for exactly these inputs.
func (r *Record) Matches(sourceHash, configHash, schemaVersion string) bool {
	return r != nil &&
		r.Hash == sourceHash &&
		r.OptionHash == configHash &&
		r.Version == schemaVersion
}

// Key returns the cache file name for an output directory.
func Key(outputPath string) string {
	return path.Join(outputPath, FileName)
}

// Store reads and writes cache records through a storage.Store.
// A disabled Store never finds a record and never writes one.
type Store struct {
	files   storage.Store
	enabled bool
	logger  *slog.Logger
}

// NewStore creates a cache store.
func NewStore(files storage.Store, enabled bool) *Store {
	return &Store{
		files:   files,
		enabled: enabled,
		logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	s.logger = logger
	return s
}

// Enabled reports whether caching is active.
func (s *Store) Enabled() bool { return s.enabled }

// Read loads the record at key. Missing, unreadable and malformed files all
// report absent.
func (s *Store) Read(ctx context.Context, key string) (*Record, bool) {
	if !s.enabled {
		return nil, false
	}

	data, err := s.files.ReadFile(ctx, key)
	if err != nil {
		if !storage.IsNotFound(err) {
			s.logger.Debug("Cache record unreadable", logfields.CacheKey(key), logfields.Error(err))
		}
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug("Cache record malformed", logfields.CacheKey(key), logfields.Error(err))
		return nil, false
	}
	if rec.Result == nil {
		s.logger.Debug("Cache record has no result", logfields.CacheKey(key))
		return nil, false
	}
	return &rec, true
}

// Validate reports whether rec can be reused for these inputs.
func (s *Store) Validate(rec *Record, sourceHash, configHash, schemaVersion string) bool {
	return rec.Matches(sourceHash, configHash, schemaVersion)
}

// Write persists a record for result. The stored copy is marked cached while
// result itself is left untouched.
func (s *Store) Write(ctx context.Context, key, sourceHash, configHash, schemaVersion string, result *asset.Result) error {
	if !s.enabled {
		return nil
	}

	stored := result.Clone()
	if stored == nil {
		stored = (&asset.Result{}).Clone()
	}
	stored.Cached = true

	data, err := json.Marshal(Record{
		Hash:       sourceHash,
		Version:    schemaVersion,
		Result:     stored,
		OptionHash: configHash,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryCache, "encode cache record").
			Warning().
			WithContext(logfields.KeyCacheKey, key).
			Build()
	}

	if err := s.files.Emit(ctx, key, data); err != nil {
		return errors.WrapError(err, errors.CategoryCache, "write cache record").
			Warning().
			WithContext(logfields.KeyCacheKey, key).
			WithContext(logfields.KeySourceHash, sourceHash).
			WithContext(logfields.KeyConfigHash, configHash).
			Build()
	}
	return nil
}
