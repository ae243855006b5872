package logger

import (
	"github.com/getsentry/sentry-go"
	"github.com/ncobase/longrun/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards error entries to the Sentry hub initialised by
// observes.NewSentry. Entries are dropped silently when no client is bound.
type SentryHook struct {
	hub *sentry.Hub
}

func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	hub := h.hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return nil
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			scope.SetExtra(k, v)
		}
		if traceID, ok := entry.Data[traceKey].(string); ok {
			scope.SetTag(traceKey, traceID)
		}
		hub.CaptureMessage(entry.Message)
	})
	return nil
}

func init() {
	RegisterHookFactory(HookSentry, func(cfg *config.Config) (logrus.Hook, error) {
		if !cfg.ReportErrors {
			return nil, nil
		}
		return &SentryHook{}, nil
	})
}
