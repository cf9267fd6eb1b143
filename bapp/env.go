package bapp

import (
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Stage is the deployment stage the service runs in.
type Stage string

const (
	StageDev  Stage = "dev"
	StageTest Stage = "test"
	StageProd Stage = "prod"
)

// UnmarshalText only accepts the known stages.
func (s *Stage) UnmarshalText(b []byte) error {
	switch v := Stage(strings.ToLower(string(b))); v {
	case StageDev, StageTest, StageProd:
		*s = v
		return nil
	default:
		return errors.Newf("invalid stage %q (supported: dev, test, prod)", string(b))
	}
}

// NoLogFiles as LOG_FILE_PATH disables the rotated log files.
const NoLogFiles = "-"

// Environment defines the interface that all environment configurations must implement.
// Embed Settings in your struct to satisfy this interface.
type Environment interface {
	Base() Settings
}

// Settings holds the configuration every service reads from the environment.
type Settings struct {
	ProjectName     string        `env:"PROJECT_NAME" envDefault:"bapi-demo"`
	APIV1Str        string        `env:"API_V1_STR" envDefault:"/api/v1"`
	Env             Stage         `env:"ENV" envDefault:"dev"`
	LogLevel        zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFilePath     string        `env:"LOG_FILE_PATH" envDefault:"logs"`
	Port            int           `env:"PORT" envDefault:"8000"`
	OtelExporter    string        `env:"OTEL_EXPORTER" envDefault:"none"`
	BodyLimit       int           `env:"BODY_LIMIT" envDefault:"1048576"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Base returns the settings themselves, embedding structs inherit it.
func (s Settings) Base() Settings { return s }

// IsDev reports whether the service runs in the development stage.
func (s Settings) IsDev() bool { return s.Env == StageDev }

// LogFiles reports whether rotated log files should be written.
func (s Settings) LogFiles() bool {
	return s.LogFilePath != "" && s.LogFilePath != NoLogFiles
}

var _ Environment = Settings{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}
		return e, nil
	}
}

// LoadDotEnv loads variables from the given files (".env" when none are given) without overwriting
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "failed to load %s", file)
		}
	}

	return nil
}
