package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/engine"
	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/internal/transfer"
	"github.com/craftpkg/craftpkg/pkg/exitcode"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

func TestInitializeLogger(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")

	// This should not panic
	initializeLogger(cmd)
}

func TestInitializeLogger_InvalidLevel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "bogus", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")

	// Should default to info level
	initializeLogger(cmd)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", &usageError{msg: "no packages specified"}, exitcode.InputError},
		{"ambiguous", &transfer.AmbiguousError{Pattern: "foo"}, exitcode.Ambiguous},
		{"local not found", &transfer.NotFoundError{Pattern: "ghost"}, exitcode.NotFound},
		{"remote not found", registry.ErrNotFound, exitcode.NotFound},
		{"wrapped remote not found", errors.Join(errors.New("ctx"), registry.ErrNotFound), exitcode.NotFound},
		{"transfer", &transfer.TransferError{Filename: "a.jar", Err: errors.New("reset")}, exitcode.TransferError},
		{"bulk lookup", &engine.BulkLookupError{Err: errors.New("down")}, exitcode.NetworkError},
		{"status", &registry.StatusError{Operation: "search", StatusCode: 503}, exitcode.NetworkError},
		{"scan io", &inventory.IOError{Filename: "plugins", Err: errors.New("permission denied")}, exitcode.IOError},
		{"generic", errors.New("boom"), exitcode.GeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRootHelp_Groups(t *testing.T) {
	cmd := newRootCommand()
	// The production init() registered all verbs with the global ops
	// registry, so the grouped help can render from any root instance.
	out := captureHelp(t, cmd)

	for _, want := range []string{"Package Commands:", "Support Commands:", "install", "upgrade", "version"} {
		if !contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}
