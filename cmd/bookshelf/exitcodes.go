package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (root resolution, bad config file)
	ExitNotFound    = 3 // Source file missing or unknown id
	ExitStoreError  = 4 // Catalog database unavailable
)
