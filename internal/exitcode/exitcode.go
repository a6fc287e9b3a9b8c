// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown ref, empty title).
	UserError = 1

	// AuthError indicates a sign-in or credentials problem.
	AuthError = 2

	// BackendError indicates a remote store or network failure.
	BackendError = 3
)
