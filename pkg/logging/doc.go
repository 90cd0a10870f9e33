// Package logging configures the process-wide slog logger used by sysunit.
//
// Logs are JSON objects written to stderr so they never mix with report
// output on stdout. Every record carries the module name and build version;
// at debug level the source location is added as well.
//
//	logging.SetDefaultStructuredLoggerWithLevel("sysunit", version, cmd.String("log-level"))
//	slog.Debug("unit skipped", "unit", name, "code", code)
//
// The level comes from the explicit argument, then the LOG_LEVEL
// environment variable, then defaults to info. ParseLogLevel accepts debug,
// info, warn (or warning) and error in any case; anything else is info.
//
// NewLogLogger adapts the default handler for APIs that require a *log.Logger,
// such as http.Server.ErrorLog.
package logging
