package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/utilkit/errstate"
	"github.com/joshuapare/utilkit/status"
)

// levelEntry is one severity-map value. Explicit entries were configured
// by the caller and survive cache maintenance; cached entries memoize an
// ancestor resolution and are evicted whenever that resolution could go
// stale.
type levelEntry struct {
	sev    Severity
	cached bool
}

// SetLoggerLevel sets the severity for name and evicts every cached
// descendant entry, so the next resolution sees the new configuration.
// Setting SeverityUnset removes the name's own voice: it inherits again.
// The empty name sets the process default; SeverityUnset there restores
// DefaultSeverity.
//
// Reports ErrInvalidArgument for severities outside the enumerated set
// and ErrSeverityMapInvalid when the severity map could not be built.
func SetLoggerLevel(name string, sev Severity) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()

	if !sev.known() {
		errstate.Setf("severity %d is not in the enumerated set", int(sev))
		return fmt.Errorf("logging: %w", status.ErrInvalidArgument)
	}
	if !g.levelsValid {
		errstate.Set("severity map is unavailable")
		return fmt.Errorf("logging: %w", status.ErrSeverityMapInvalid)
	}

	if name == "" {
		if sev == SeverityUnset {
			g.defaultLevel = DefaultSeverity
		} else {
			g.defaultLevel = sev
		}
		g.purgeCachedLocked(func(string) bool { return true })
		return nil
	}

	if err := g.levels.Set(name, levelEntry{sev: sev}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	prefix := name + "."
	g.purgeCachedLocked(func(k string) bool {
		return k == name || strings.HasPrefix(k, prefix)
	})
	return nil
}

// purgeCachedLocked removes every cached entry whose name matches.
// Explicit entries always survive. Collect first, then unset, so the
// iterator never observes its own mutations.
func (s *globalState) purgeCachedLocked(match func(string) bool) {
	var doomed []string
	var key *string
	for {
		k, e, err := s.levels.GetNextKeyAndData(key)
		if err != nil {
			break
		}
		if e.cached && match(*k) {
			doomed = append(doomed, *k)
		}
		key = k
	}
	for _, k := range doomed {
		_ = s.levels.Unset(k)
	}
}

// GetLoggerLevel returns the severity stored for exactly name, without
// consulting ancestors: SeverityUnset when nothing is stored. The empty
// name returns the process default. When the severity map could not be
// built every name reads as SeverityUnset. The error is reserved and
// currently always nil.
func GetLoggerLevel(name string) (Severity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()

	if name == "" {
		return g.defaultLevel, nil
	}
	if !g.levelsValid {
		return SeverityUnset, nil
	}
	e, err := g.levels.Get(name)
	if err != nil {
		return SeverityUnset, nil
	}
	return e.sev, nil
}

// GetLoggerEffectiveLevel returns the severity that controls emission for
// name: its own entry if one is set, else the nearest configured
// ancestor, else the process default. The result is memoized in the
// severity map. The error is reserved and currently always nil.
func GetLoggerEffectiveLevel(name string) (Severity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()
	return g.effectiveLevelLocked(name), nil
}

func (s *globalState) effectiveLevelLocked(name string) Severity {
	if name == "" || !s.levelsValid {
		return s.defaultLevel
	}

	exactMiss := false
	if e, err := s.levels.Get(name); err == nil {
		if e.sev != SeverityUnset {
			return e.sev
		}
	} else {
		exactMiss = true
	}

	sev := SeverityUnset
	n := name
	for {
		dot := strings.LastIndexByte(n, '.')
		if dot < 0 {
			break
		}
		n = n[:dot]
		if e, err := s.levels.Get(n); err == nil && e.sev != SeverityUnset {
			sev = e.sev
			break
		}
	}
	if sev == SeverityUnset {
		sev = s.defaultLevel
	}

	// Memoize only when the name had no entry at all; an explicit
	// SeverityUnset must keep marking "inherit".
	if exactMiss {
		if err := s.levels.Set(name, levelEntry{sev: sev, cached: true}); err != nil {
			fmt.Fprintf(os.Stderr, "[utilkit|logging] failed to cache the severity for logger '%s'\n", name)
			errstate.Reset()
		}
	}
	return sev
}

// LoggerIsEnabledFor reports whether a record of severity sev for the
// named logger would be emitted. When the logging system cannot be
// initialized at all, the error channel is set and the answer is false.
func LoggerIsEnabledFor(name string, sev Severity) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabledLocked(name, sev)
}

func (s *globalState) enabledLocked(name string, sev Severity) bool {
	s.autoInitLocked()
	if !s.initialized {
		errstate.Set("logging system could not be initialized")
		return false
	}
	return sev >= s.effectiveLevelLocked(name)
}

// SetDefaultLoggerLevel sets the process default severity; SeverityUnset
// restores DefaultSeverity. Equivalent to SetLoggerLevel with the empty
// name.
func SetDefaultLoggerLevel(sev Severity) error {
	return SetLoggerLevel("", sev)
}

// GetDefaultLoggerLevel returns the process default severity.
func GetDefaultLoggerLevel() Severity {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.autoInitLocked()
	return g.defaultLevel
}
