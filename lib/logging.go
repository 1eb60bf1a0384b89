package lib

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger     *logrus.Logger
	loggerLock sync.RWMutex
)

// InitLogger configures the process logger. Logs go to stderr, and also to
// a rotating file when dir is not empty.
func InitLogger(level, dir string) error {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	writer, err := logWriter(dir)
	if err != nil {
		return err
	}
	l.SetOutput(writer)

	loggerLock.Lock()
	logger = l
	loggerLock.Unlock()

	return nil
}

func Logger() *logrus.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()

	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

func logWriter(dir string) (io.Writer, error) {
	if dir == "" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "create log dir %s", dir)
	}

	// rotation parameters are fixed
	file := &lumberjack.Logger{
		Filename: filepath.Join(dir, "jlckicad.log"),
		// megabytes
		MaxSize:    16,
		MaxBackups: 5,
		// days
		MaxAge:    30,
		LocalTime: true,
	}

	return io.MultiWriter(os.Stderr, file), nil
}
