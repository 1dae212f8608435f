package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes structured logs to STDOUT, and additionally to a
// timestamped log file when logFilePath is configured. The money-moving
// flows log through this, so a failure to open the file downgrades to
// STDOUT-only instead of aborting startup.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := openLogFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
			return logger
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	return logger
}

// openLogFile weaves the start time into the configured file name, so a
// restart never clobbers the previous run's log.
func openLogFile(path string) (*os.File, error) {
	stamp := time.Now().Format("2006-01-02 15:04:05")
	if extension := filepath.Ext(path); extension != "" {
		path = strings.Replace(path, extension, stamp+extension, 1)
	} else {
		path = path + stamp
	}

	return os.Create(path)
}
