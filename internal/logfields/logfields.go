// Where: internal/logfields/logfields.go
// What: Canonical slog field names and attr helpers.
// Why: Avoid key drift between packages that log the same concepts.
package logfields

import "log/slog"

const (
	KeyProject       = "project"
	KeyConfiguration = "configuration"
	KeyTargetDir     = "target_location"
	KeyCommand       = "command"
	KeyExitCode      = "exit_code"
	KeyPath          = "path"
	KeyRunner        = "runner"
	KeyImage         = "image"
	KeyBucket        = "bucket"
	KeyObjectKey     = "object_key"
	KeyDurationMS    = "duration_ms"
	KeyError         = "error"
)

func Project(p string) slog.Attr       { return slog.String(KeyProject, p) }
func Configuration(c string) slog.Attr { return slog.String(KeyConfiguration, c) }
func TargetDir(d string) slog.Attr     { return slog.String(KeyTargetDir, d) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Runner(r string) slog.Attr        { return slog.String(KeyRunner, r) }
func Image(i string) slog.Attr         { return slog.String(KeyImage, i) }
func Bucket(b string) slog.Attr        { return slog.String(KeyBucket, b) }
func ObjectKey(k string) slog.Attr     { return slog.String(KeyObjectKey, k) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
