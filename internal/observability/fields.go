package observability

import (
	"time"

	"go.uber.org/zap"
)

// Field is a structured logging field.
type Field = zap.Field

// String constructs a field with a string value.
func String(key, value string) Field { return zap.String(key, value) }

// Int constructs a field with an int value.
func Int(key string, value int) Field { return zap.Int(key, value) }

// Int64 constructs a field with an int64 value.
func Int64(key string, value int64) Field { return zap.Int64(key, value) }

// Bool constructs a field with a bool value.
func Bool(key string, value bool) Field { return zap.Bool(key, value) }

// Duration constructs a field with a duration value.
func Duration(key string, value time.Duration) Field { return zap.Duration(key, value) }

// Any constructs a field with an arbitrary value.
func Any(key string, value any) Field { return zap.Any(key, value) }

// Error constructs a field carrying err under the "error" key.
func Error(err error) Field { return zap.Error(err) }
