package bapp

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/advdv/bapi"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logRetentionDays = 30
	appLogFile       = "app.log"
	errorLogFile     = "error.log"
)

// NewLogger creates a zap logger configured from the environment. It writes to stdout at LOG_LEVEL and,
// unless disabled, to "app.log" (LOG_LEVEL) and "error.log" (errors only) in LOG_FILE_PATH. The files
// are rotated daily by the returned [DailyRotator], kept for 30 days and compressed.
func NewLogger(env Environment) (*zap.Logger, *DailyRotator, error) {
	return newLogger(env.Base(), true)
}

func newLogger(s Settings, compress bool) (*zap.Logger, *DailyRotator, error) {
	level := zap.NewAtomicLevelAt(s.LogLevel)

	consoleCfg := encoderConfig()
	if s.IsDev() {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	rotator := &DailyRotator{}
	if s.LogFiles() {
		if err := os.MkdirAll(s.LogFilePath, 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "failed to create log directory")
		}

		appLog, errLog := newLogFile(s.LogFilePath, appLogFile, compress), newLogFile(s.LogFilePath, errorLogFile, compress)
		rotator.files = append(rotator.files, appLog, errLog)

		fileEnc := zapcore.NewConsoleEncoder(encoderConfig())
		cores = append(cores,
			zapcore.NewCore(fileEnc, zapcore.AddSync(appLog), level),
			zapcore.NewCore(fileEnc, zapcore.AddSync(errLog), zapcore.ErrorLevel),
		)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(s.ProjectName), rotator, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " | "
	return cfg
}

func newLogFile(dir, name string, compress bool) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:  filepath.Join(dir, name),
		MaxAge:    logRetentionDays,
		Compress:  compress,
		LocalTime: true,
	}
}

// DailyRotator rotates log files at local midnight.
type DailyRotator struct {
	files []*lumberjack.Logger
	now   func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Rotate rotates all files immediately.
func (d *DailyRotator) Rotate() error {
	var err error
	for _, f := range d.files {
		err = errors.CombineErrors(err, f.Rotate())
	}
	return err
}

// Start begins rotating at every local midnight until Stop is called.
func (d *DailyRotator) Start(logs *zap.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.files) == 0 || d.stop != nil {
		return
	}

	d.stop, d.done = make(chan struct{}), make(chan struct{})
	go d.loop(logs, d.stop, d.done)
}

// Stop ends the rotation loop and closes the files.
func (d *DailyRotator) Stop(ctx context.Context) error {
	d.mu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	if stop != nil {
		close(stop)
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var err error
	for _, f := range d.files {
		err = errors.CombineErrors(err, f.Close())
	}
	return err
}

func (d *DailyRotator) loop(logs *zap.Logger, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		now := d.clock()
		timer := time.NewTimer(nextMidnight(now).Sub(now))

		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			if err := d.Rotate(); err != nil {
				logs.Error("failed to rotate log files", zap.Error(err))
			}
		}
	}
}

func (d *DailyRotator) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func nextMidnight(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day+1, 0, 0, 0, 0, t.Location())
}

// startLoggingHook registers lifecycle hooks for the log file rotation.
func startLoggingHook(lc fx.Lifecycle, rotator *DailyRotator, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			rotator.Start(logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return rotator.Stop(ctx)
		},
	})
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledServeError(err error) {
	l.Logger.Error("unhandled server error", zap.Error(err))
}

func (l zapLogger) LogImplicitFlushError(err error) {
	l.Logger.Error("error while flushing implicitly", zap.Error(err))
}

func newZapBapiLogger(l *zap.Logger) bapi.Logger {
	return zapLogger{l.Named("bapi").Named("bapp")}
}
