package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/redimap"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ redimap.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f redimap.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f redimap.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f redimap.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f redimap.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
