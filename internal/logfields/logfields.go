package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage        = "stage"
	KeyOutcome      = "outcome"
	KeyDurationMS   = "duration_ms"
	KeySourceHash   = "source_hash"
	KeyConfigHash   = "config_hash"
	KeyCacheKey     = "cache_key"
	KeyPath         = "path"
	KeyFile         = "file"
	KeyPlatform     = "platform"
	KeyPreset       = "preset"
	KeyInvocationID = "invocation_id"
	KeyAssets       = "assets"
	KeySubject      = "subject"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func SourceHash(h string) slog.Attr     { return slog.String(KeySourceHash, h) }
func ConfigHash(h string) slog.Attr     { return slog.String(KeyConfigHash, h) }
func CacheKey(k string) slog.Attr       { return slog.String(KeyCacheKey, k) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func Platform(p string) slog.Attr       { return slog.String(KeyPlatform, p) }
func Preset(p string) slog.Attr         { return slog.String(KeyPreset, p) }
func InvocationID(id string) slog.Attr  { return slog.String(KeyInvocationID, id) }
func Assets(n int) slog.Attr            { return slog.Int(KeyAssets, n) }
func Subject(s string) slog.Attr        { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
