package types

// RunMode is the deployment mode of the application
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeAPI   RunMode = "api"
	ModeCron  RunMode = "cron"
)

// LogLevel is the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
