package code

// ShellError: external binary invocation failures (spec §7, stratum 3).
const (
	// ErrShellEmpty - 500: the runner was asked to execute an empty command line.
	ErrShellEmpty int = iota + 130001

	// ErrShellIo - 500: failed to start or communicate with the child process.
	ErrShellIo

	// ErrShellFailed - 500: the child process exited non-zero; stderr is captured.
	ErrShellFailed
)
