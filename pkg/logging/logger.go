package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	// AppLogPath is the application log file; empty logs to stdout
	AppLogPath string
	// AccessLogPath is the access-decision log file; empty discards
	AccessLogPath string
	// Level is one of debug, info, warn, error
	Level string
	// MaxLogSize is the size in bytes at which log files rotate
	MaxLogSize int64
}

var (
	// App is the global application logger
	App *zap.SugaredLogger
	// Access is the global access-decision logger
	Access AccessLogger
)

func init() {
	// No-op defaults so packages can log before Initialize is called
	App = zap.NewNop().Sugar()
	Access = discardAccessLogger{}
}

// Initialize sets up the global loggers
func Initialize(config *Config) error {
	level := zapcore.InfoLevel
	if config.Level != "" {
		if err := level.Set(strings.ToLower(config.Level)); err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		TimeKey:     "ts",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}

	var sink zapcore.WriteSyncer
	if config.AppLogPath != "" {
		maxSize := config.MaxLogSize
		if maxSize <= 0 {
			maxSize = defaultMaxLogSize
		}
		writer, err := NewRotatingWriter(config.AppLogPath, maxSize)
		if err != nil {
			return fmt.Errorf("opening app log: %w", err)
		}
		sink = zapcore.AddSync(writer)
	} else {
		sink = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)
	App = zap.New(core).Sugar()

	access, err := NewAccessLogger(config.AccessLogPath)
	if err != nil {
		return fmt.Errorf("initializing access logger: %w", err)
	}
	Access = access

	return nil
}

// MustInitialize initializes logging and panics on error
func MustInitialize(config *Config) {
	if err := Initialize(config); err != nil {
		panic(fmt.Sprintf("failed to initialize logging: %v", err))
	}
}

const defaultMaxLogSize = 10 * 1024 * 1024
