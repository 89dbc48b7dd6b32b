package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry
}

var (
	entry *logrus.Entry
	once  sync.Once
)

// GetLogger возвращает общий логгер процесса.
// Уровень берется из LOG_LEVEL, по умолчанию trace.
func GetLogger() *Logger {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stdout)
		l.SetReportCaller(false)
		l.Formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		}

		level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
		if err != nil {
			level = logrus.TraceLevel
		}
		l.SetLevel(level)

		entry = logrus.NewEntry(l)
	})

	return &Logger{entry}
}

func (l *Logger) GetLoggerWithField(k string, v interface{}) *Logger {
	return &Logger{l.WithField(k, v)}
}
