package logger

import (
	"fmt"
	"sync"

	"github.com/ncobase/longrun/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// HookType represents the type of logging hook
type HookType string

const (
	HookSentry HookType = "sentry"
)

// HookFactory creates a logrus hook from configuration. A factory returns a nil
// hook when the configuration does not enable it.
type HookFactory func(cfg *config.Config) (logrus.Hook, error)

var (
	hookFactories = make(map[HookType]HookFactory)
	hookMu        sync.RWMutex
)

// RegisterHookFactory registers a hook factory for a given type.
func RegisterHookFactory(hookType HookType, factory HookFactory) {
	hookMu.Lock()
	defer hookMu.Unlock()
	hookFactories[hookType] = factory
}

// GetHookFactory returns the factory for a given hook type
func GetHookFactory(hookType HookType) (HookFactory, bool) {
	hookMu.RLock()
	defer hookMu.RUnlock()
	factory, ok := hookFactories[hookType]
	return factory, ok
}

// initHooks installs every registered hook the configuration enables.
func (l *Logger) initHooks(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	hookMu.RLock()
	defer hookMu.RUnlock()

	for hookType, factory := range hookFactories {
		hook, err := factory(cfg)
		if err != nil {
			return fmt.Errorf("failed to create %s hook: %w", hookType, err)
		}
		if hook != nil && !l.hookExists(hook) {
			l.AddHook(hook)
		}
	}
	return nil
}

// hookExists checks if hook already exists
func (l *Logger) hookExists(hook logrus.Hook) bool {
	for _, h := range l.Hooks {
		for _, existingHook := range h {
			if existingHook == hook {
				return true
			}
		}
	}
	return false
}
