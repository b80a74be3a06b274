package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"browser-runner/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter backs the LoggerPort with a zap sugared logger. Everything goes
// to stderr: stdout is reserved for the single JSON response document.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

// New builds a stderr JSON logger. verbose=false keeps only warnings and
// errors; BROWSER_USE_SETUP_LOGGING controls the switch. The stdlib log
// package is redirected into zap so that library noise (rod, godotenv)
// cannot leak onto stdout.
func New(verbose bool) *ZapAdapter {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	logger := zap.New(core).Named("browser-runner")
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)

	return &ZapAdapter{sugar: logger.Sugar()}
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{sugar: l.sugar.With(key, value)}
}

func (l *ZapAdapter) Sync() error {
	return l.sugar.Sync()
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *ZapAdapter {
	return &ZapAdapter{sugar: zap.NewNop().Sugar()}
}
