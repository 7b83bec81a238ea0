package shared

// Process exit codes returned by the CLI.
const (
	ExitOK           = 0
	ExitFailed       = 1
	ExitConfigError  = 2
	ExitContentError = 3
	ExitInstallError = 4
	ExitBuildError   = 5
)
