package launcher

import (
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// newLogger builds a logger writing to out. A configured Sentry DSN adds a
// hook that reports error-level entries.
func newLogger(cfg LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = out
	log.SetLevel(verbosityLevels[cfg.Verbosity])

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, err
		}
		log.Hooks.Add(hook)
	}
	return log, nil
}
