// Package logging is a process-wide, severity-filtered logging facility
// with hierarchical logger names and an environment-configured console
// sink.
//
// # Overview
//
// Loggers are dot-separated names: "nav", "nav.planner",
// "nav.planner.astar". Each name may carry an explicit severity; names
// without one inherit from their longest configured ancestor, and
// ultimately from the process default (INFO). A record is emitted when its
// severity is at or above the effective level of its logger name:
//
//	logging.SetLoggerLevel("nav", logging.SeverityWarn)
//	logging.Infof("nav.planner", "replanning %d waypoints", n) // dropped
//	logging.Errorf("nav.planner", "no route to %v", goal)      // emitted
//
// Resolved levels are cached in the severity map and evicted whenever an
// ancestor's configuration changes, so the inheritance walk runs once per
// name, not once per record.
//
// # Initialization
//
// Initialize reads the environment once, compiles the output format, and
// prepares the console sink. Every public operation initializes lazily, so
// calling Initialize is optional; call it directly when the error report
// matters. Shutdown releases everything and returns the package to the
// uninitialized state. Both are idempotent.
//
// Configuration comes from environment variables whose names are part of
// the library's contract:
//
//	RCUTILS_CONSOLE_OUTPUT_FORMAT        record layout (tokens in braces)
//	RCUTILS_LOGGING_USE_STDOUT           "1" routes records to stdout
//	RCUTILS_LOGGING_BUFFERED_STREAM      "1" buffers the stream per record
//	RCUTILS_COLORIZED_OUTPUT             "1" forces colour, "0" forbids it;
//	                                     unset probes the stream for a TTY
//
// Boolean variables are strict: anything other than "", "0" or "1" keeps
// the default and Initialize reports ErrInvalidArgument.
//
// # Output format
//
// The format string is compiled once into a step program. Recognized
// tokens are {severity}, {name}, {message}, {function_name}, {file_name},
// {time}, {time_as_nanoseconds} and {line_number}; anything else in braces
// is kept verbatim. The default format is
//
//	[{severity}] [{time}] [{name}]: {message}
//
// # Sinks
//
// Records flow through a single Handler. ConsoleOutputHandler is the
// default; SetOutputHandler swaps in another, and a nil handler drops
// records. Emission and reconfiguration serialize on one package mutex,
// so records never interleave and level changes are seen atomically.
//
// The logger never terminates the process. SeverityFatal is a
// categorisation, not an action.
package logging
