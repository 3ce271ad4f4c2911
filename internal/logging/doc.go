// Package logging provides a simple leveled logging interface for the
// exporter.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable
// and can be overridden once configuration has been parsed. Setting
// DEBUG=true forces debug level either way.
package logging
