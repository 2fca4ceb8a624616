package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/hexbench/internal/core/source"
)

// OpenFlags are the file-opening options shared by every command that
// takes a file argument.
type OpenFlags struct {
	Seek     uint64
	Take     int64
	ReadOnly bool
	Mmap     bool
}

// CLIFlags returns the cli flag definitions bound to this struct.
func (of *OpenFlags) CLIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:        "seek",
			Usage:       "byte offset in the file to start reading from",
			Destination: &of.Seek,
		},
		&cli.Int64Flag{
			Name:        "take",
			Usage:       "number of bytes to read (negative = to end of file)",
			Value:       -1,
			Destination: &of.Take,
		},
		&cli.BoolFlag{
			Name:        "read-only",
			Usage:       "open without write access",
			Destination: &of.ReadOnly,
		},
		&cli.BoolFlag{
			Name:        "mmap",
			Usage:       "memory-map the file instead of reading it (implies read-only)",
			Destination: &of.Mmap,
		},
	}
}

// Spec builds a source.OpenSpec for the given path argument. The path
// "-" reads from stdin, which must not be a terminal: binary data typed
// by hand is never what the user meant.
func (of *OpenFlags) Spec(path string) (source.OpenSpec, error) {
	if path == "" {
		return source.OpenSpec{}, fmt.Errorf("missing file argument")
	}
	if path == "-" && term.IsTerminal(int(os.Stdin.Fd())) {
		return source.OpenSpec{}, fmt.Errorf("refusing to read binary data from a terminal; pipe a file into stdin")
	}
	return source.OpenSpec{
		Path:     path,
		Seek:     of.Seek,
		Take:     of.Take,
		ReadOnly: of.ReadOnly,
		Mmap:     of.Mmap,
		Stdin:    os.Stdin,
	}, nil
}
