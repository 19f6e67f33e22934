package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Handler реализует slog.Handler поверх zerolog.
type Handler struct {
	logger zerolog.Logger
	level  slog.Level
}

// New создаёт slog.Logger с zerolog backend и заданным минимальным уровнем.
func New(w io.Writer, level slog.Level) *slog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return slog.New(&Handler{logger: logger, level: level})
}

// NewConsole создаёт slog.Logger с человекочитаемым консольным выводом.
func NewConsole(w io.Writer, level slog.Level) *slog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	return slog.New(&Handler{logger: logger, level: level})
}

// FromZerolog оборачивает существующий zerolog.Logger в slog.Logger.
func FromZerolog(logger zerolog.Logger) *slog.Logger {
	return slog.New(&Handler{logger: logger, level: slogLevel(logger.GetLevel())})
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {

	var event *zerolog.Event
	switch zerologLevel(record.Level) {
	case zerolog.ErrorLevel:
		event = h.logger.Error()
	case zerolog.WarnLevel:
		event = h.logger.Warn()
	case zerolog.InfoLevel:
		event = h.logger.Info()
	case zerolog.DebugLevel:
		event = h.logger.Debug()
	default:
		event = h.logger.Trace()
	}
	if event == nil {
		return nil
	}

	record.Attrs(func(attr slog.Attr) bool {
		addAttr(event, attr)
		return true
	})
	event.Msg(record.Message)
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ctx := h.logger.With()
	for _, attr := range attrs {
		ctx = addContextAttr(ctx, attr)
	}
	return &Handler{logger: ctx.Logger(), level: h.level}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		logger: h.logger.With().Str("group", name).Logger(),
		level:  h.level,
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func slogLevel(level zerolog.Level) slog.Level {
	switch level {
	case zerolog.Disabled:
		return slog.Level(999)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return slog.LevelError
	case zerolog.WarnLevel:
		return slog.LevelWarn
	case zerolog.InfoLevel:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func addAttr(event *zerolog.Event, attr slog.Attr) *zerolog.Event {
	switch attr.Value.Kind() {
	case slog.KindString:
		return event.Str(attr.Key, attr.Value.String())
	case slog.KindInt64:
		return event.Int64(attr.Key, attr.Value.Int64())
	case slog.KindUint64:
		return event.Uint64(attr.Key, attr.Value.Uint64())
	case slog.KindFloat64:
		return event.Float64(attr.Key, attr.Value.Float64())
	case slog.KindBool:
		return event.Bool(attr.Key, attr.Value.Bool())
	case slog.KindDuration:
		return event.Dur(attr.Key, attr.Value.Duration())
	case slog.KindTime:
		return event.Time(attr.Key, attr.Value.Time())
	default:
		return event.Interface(attr.Key, attr.Value.Any())
	}
}

func addContextAttr(ctx zerolog.Context, attr slog.Attr) zerolog.Context {
	switch attr.Value.Kind() {
	case slog.KindString:
		return ctx.Str(attr.Key, attr.Value.String())
	case slog.KindInt64:
		return ctx.Int64(attr.Key, attr.Value.Int64())
	case slog.KindUint64:
		return ctx.Uint64(attr.Key, attr.Value.Uint64())
	case slog.KindFloat64:
		return ctx.Float64(attr.Key, attr.Value.Float64())
	case slog.KindBool:
		return ctx.Bool(attr.Key, attr.Value.Bool())
	case slog.KindDuration:
		return ctx.Dur(attr.Key, attr.Value.Duration())
	case slog.KindTime:
		return ctx.Time(attr.Key, attr.Value.Time())
	default:
		return ctx.Interface(attr.Key, attr.Value.Any())
	}
}
