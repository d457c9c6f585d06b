// Package exitcode provides standardized exit codes for craftpkg
package exitcode

// Exit codes for the craftpkg CLI
const (
	Success       = 0
	GeneralError  = 1
	InputError    = 2
	NotFound      = 3
	Ambiguous     = 4
	NetworkError  = 5
	TransferError = 6
	IOError       = 7
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case InputError:
		return "Invalid arguments"
	case NotFound:
		return "Package not found"
	case Ambiguous:
		return "Ambiguous package selection"
	case NetworkError:
		return "Registry unreachable"
	case TransferError:
		return "Transfer failed"
	case IOError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
