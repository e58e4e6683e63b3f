package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DEFAULT_TIMESTAMP_FORMAT = "2006-01-02 15:04:05"

var levelDesc = []string{"PANC", "FATL", "ERRO", "WARN", "INFO", "DEBG", "TRCE"}

// PlainFormatter writes 'LEVL timestamp message key=value...'.
type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

func (f *PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb strings.Builder

	level := "????"
	if int(entry.Level) < len(f.LevelDesc) {
		level = f.LevelDesc[entry.Level]
	}

	sb.WriteString(level)
	sb.WriteByte(' ')
	sb.WriteString(entry.Time.Format(f.TimestampFormat))
	sb.WriteByte(' ')
	sb.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for key := range entry.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&sb, " %s=%v", key, entry.Data[key])
		}
	}

	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

type Config struct {
	Debug      bool   `koanf:"debug"`
	Filename   string `koanf:"filename"`
	MaxSizeMB  int    `koanf:"max_size"` // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age"` // Days
	Compress   bool   `koanf:"compress"`
}

func (cfg *Config) Validate() error {
	if cfg.Filename == "" {
		return nil
	}
	if cfg.MaxSizeMB < 0 {
		return errors.New("'logging.max_size' must be >= 0")
	}
	if cfg.MaxBackups < 0 {
		return errors.New("'logging.max_backups' must be >= 0")
	}
	if cfg.MaxAgeDays < 0 {
		return errors.New("'logging.max_age' must be >= 0")
	}
	return nil
}

func (cfg *Config) newFormatter() *PlainFormatter {
	return &PlainFormatter{
		TimestampFormat: DEFAULT_TIMESTAMP_FORMAT,
		LevelDesc:       levelDesc,
	}
}

// CreateLogger logs to stdout and, when a filename is configured, to a
// rotated file as well. 'rotate' starts a fresh file.
func (cfg *Config) CreateLogger(rotate bool, wrapStdlibDefault bool) *logrus.Logger {
	output := io.Writer(os.Stdout)

	if cfg.Filename != "" {
		lumberjackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}

		if rotate {
			lumberjackLogger.Rotate()
		}

		output = io.MultiWriter(output, lumberjackLogger)
	}

	logger := logrus.New()
	logger.SetFormatter(cfg.newFormatter())
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	logger.SetOutput(output)

	if wrapStdlibDefault {
		log.SetOutput(logger.Writer())
	}

	return logger
}

func GetDefaultConfig() Config {
	return Config{
		MaxSizeMB:  100,
		MaxBackups: 10,
		MaxAgeDays: 30,
		Compress:   true,
	}
}
