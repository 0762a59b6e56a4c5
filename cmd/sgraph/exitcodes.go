package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config)
	ExitDataError   = 3 // Data error (malformed snapshot, inconsistent tensor)
	ExitNotFound    = 4 // No snapshot for the requested paper
	ExitAPIError    = 5 // Graph API error (rate limit, network, server failure)
)
