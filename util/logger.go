package util

import (
	"os"

	"github.com/sirupsen/logrus"
)

var appLogger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Logger returns the application-wide logger.
func Logger() *logrus.Logger {
	return appLogger
}

// ConfigureLogger adjusts format and level for the given APPENV value.
// Production logs are JSON; anything else stays human readable.
func ConfigureLogger(appEnv string) {
	switch appEnv {
	case "production":
		appLogger.SetFormatter(&logrus.JSONFormatter{})
		appLogger.SetLevel(logrus.InfoLevel)
	case "test":
		appLogger.SetLevel(logrus.WarnLevel)
	default:
		appLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		appLogger.SetLevel(logrus.DebugLevel)
	}
}
