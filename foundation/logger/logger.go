package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs the application logger. When logDirectory is empty the
// logger writes to stdout only, which is the default for a local tool.
func New(logDirectory string, service string) (*zap.SugaredLogger, error) {
	outputPaths := []string{"stdout"}

	if logDirectory != "" {
		if _, err := os.Stat(logDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(logDirectory, os.ModePerm); err != nil {
				return nil, err
			}
		}

		logPath := filepath.Join(logDirectory, service+".log")

		if _, err := os.OpenFile(logPath, os.O_CREATE|os.O_RDWR, os.ModePerm); err != nil {
			return nil, err
		}

		outputPaths = append(outputPaths, logPath)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = outputPaths
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = false

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
