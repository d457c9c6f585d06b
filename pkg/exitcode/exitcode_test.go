package exitcode

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{InputError, "Invalid arguments"},
		{NotFound, "Package not found"},
		{Ambiguous, "Ambiguous package selection"},
		{NetworkError, "Registry unreachable"},
		{TransferError, "Transfer failed"},
		{IOError, "File system error"},
		{99, "Unknown error"},
	}
	for _, tt := range tests {
		if got := String(tt.code); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []int{Success, GeneralError, InputError, NotFound, Ambiguous, NetworkError, TransferError, IOError}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d reused", c)
		}
		seen[c] = true
	}
}
