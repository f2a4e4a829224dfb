package logging

// Logger is a value handle binding a logger name to the package entry
// points, so call sites carry the name once instead of on every line.
// The zero value is the root logger (empty name). Copying is cheap; all
// state lives in the package singleton.
type Logger struct {
	name string
}

// NewLogger returns a handle for the named logger. No registration
// happens; a name exists by being used.
func NewLogger(name string) Logger {
	return Logger{name: name}
}

// Name returns the logger's full dotted name.
func (l Logger) Name() string {
	return l.name
}

// Child returns a handle for the dot-joined descendant name, which
// inherits this logger's effective severity until configured itself.
func (l Logger) Child(suffix string) Logger {
	switch {
	case suffix == "":
		return l
	case l.name == "":
		return Logger{name: suffix}
	}
	return Logger{name: l.name + "." + suffix}
}

// Enabled reports whether a record at sev would be emitted.
func (l Logger) Enabled(sev Severity) bool {
	return LoggerIsEnabledFor(l.name, sev)
}

// Level returns the logger's effective severity.
func (l Logger) Level() Severity {
	sev, _ := GetLoggerEffectiveLevel(l.name)
	return sev
}

// SetLevel configures the logger's explicit severity; SeverityUnset makes
// it inherit again.
func (l Logger) SetLevel(sev Severity) error {
	return SetLoggerLevel(l.name, sev)
}

// Debugf logs a printf-style DEBUG record.
func (l Logger) Debugf(format string, args ...any) {
	logWithCaller(SeverityDebug, l.name, format, args)
}

// Infof logs a printf-style INFO record.
func (l Logger) Infof(format string, args ...any) {
	logWithCaller(SeverityInfo, l.name, format, args)
}

// Warnf logs a printf-style WARN record.
func (l Logger) Warnf(format string, args ...any) {
	logWithCaller(SeverityWarn, l.name, format, args)
}

// Errorf logs a printf-style ERROR record.
func (l Logger) Errorf(format string, args ...any) {
	logWithCaller(SeverityError, l.name, format, args)
}

// Fatalf logs a printf-style FATAL record without terminating the
// process.
func (l Logger) Fatalf(format string, args ...any) {
	logWithCaller(SeverityFatal, l.name, format, args)
}
