package logging

import (
	"math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapAdapter forwards zap entries into a Logger, so the gonum-backed engine
// and the facade write to the same stream.
type zapAdapter struct {
	logger *Logger
}

// NewZapLogger creates a *zap.Logger whose entries are emitted by logger.
func NewZapLogger(logger *Logger) *zap.Logger {
	return zap.New(&zapAdapter{logger: logger})
}

// Enabled implements zapcore.Core.
func (a *zapAdapter) Enabled(level zapcore.Level) bool {
	return a.logger.enabled(mapLevel(level))
}

// With implements zapcore.Core.
func (a *zapAdapter) With(fields []zapcore.Field) zapcore.Core {
	return &zapAdapter{logger: a.logger.WithFields(fieldMap(fields))}
}

// Check implements zapcore.Core.
func (a *zapAdapter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(ent.Level) {
		return ce.AddCore(ent, a)
	}
	return ce
}

// Write implements zapcore.Core.
func (a *zapAdapter) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	f := fieldMap(fields)
	if ent.LoggerName != "" {
		f["logger"] = ent.LoggerName
	}
	a.logger.log(mapLevel(ent.Level), ent.Message, f)
	return nil
}

// Sync implements zapcore.Core.
func (a *zapAdapter) Sync() error {
	return nil
}

func mapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func fieldMap(fields []zapcore.Field) map[string]interface{} {
	f := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		switch field.Type {
		case zapcore.StringType:
			f[field.Key] = field.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
			f[field.Key] = field.Integer
		case zapcore.Float64Type:
			f[field.Key] = math.Float64frombits(uint64(field.Integer))
		case zapcore.BoolType:
			f[field.Key] = field.Integer == 1
		case zapcore.ErrorType:
			if err, ok := field.Interface.(error); ok {
				f[field.Key] = err.Error()
			} else {
				f[field.Key] = field.Interface
			}
		default:
			f[field.Key] = field.Interface
		}
	}
	return f
}
