// tclsh is a minimal interactive shell and script runner for the tcl
// interpreter, useful for manual exploration and smoke testing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/term"

	"github.com/feather-lang/tcl"
)

func main() {
	rcfile := flag.String("rcfile", defaultRCFile(), "startup script to source before the shell/scripts run")
	verbose := flag.Bool("verbose", false, "log namespace/command diagnostics to stderr")
	flag.Parse()

	logger := hclog.NewNullLogger()
	if *verbose {
		logger = hclog.New(&hclog.LoggerOptions{Name: "tclsh", Level: hclog.Debug, Output: os.Stderr})
	}
	interp := tcl.New(tcl.WithLogger(logger))

	if err := sourceIfExists(interp, *rcfile); err != nil {
		fmt.Fprintf(os.Stderr, "tclsh: rcfile: %v\n", err)
	}

	args := flag.Args()
	if len(args) > 0 {
		os.Exit(runFiles(interp, args))
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		os.Exit(runREPL(interp))
	}
	os.Exit(runScript(interp, os.Stdin))
}

func defaultRCFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tclshrc")
}

func sourceIfExists(interp *tcl.Interp, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	_, err = interp.Eval(string(data))
	return err
}

// runFiles evaluates each script argument in turn, continuing past
// per-file errors and aggregating them so a single exit reports every
// file that failed rather than only the first.
func runFiles(interp *tcl.Interp, paths []string) int {
	var errs *multierror.Error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if _, err := interp.Eval(string(data)); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	if errs.ErrorOrNil() != nil {
		fmt.Fprintln(os.Stderr, errs)
		return 1
	}
	return 0
}

func runScript(interp *tcl.Interp, r io.Reader) int {
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tclsh: %v\n", err)
		return 1
	}
	result, err := interp.Eval(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if s := result.String(); s != "" {
		fmt.Println(s)
	}
	return 0
}

// ttyReadWriter adapts stdin/stdout to the io.ReadWriter golang.org/x/term's
// Terminal needs for its raw-mode line editing and history.
type ttyReadWriter struct{}

func (ttyReadWriter) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (ttyReadWriter) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func runREPL(interp *tcl.Interp) int {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tclsh: %v\n", err)
		return 1
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(ttyReadWriter{}, "% ")
	var buffer string

	for {
		line, err := t.ReadLine()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "\r\ntclsh: %v\r\n", err)
			}
			fmt.Fprint(os.Stdout, "\r\n")
			return 0
		}

		if buffer != "" {
			buffer += "\n" + line
		} else {
			buffer = line
		}

		switch pr := interp.Parse(buffer); pr.Status {
		case tcl.ParseIncomplete:
			t.SetPrompt("> ")
			continue
		case tcl.ParseError:
			fmt.Fprintf(t, "error: %s\r\n", pr.Message)
			buffer = ""
			t.SetPrompt("% ")
			continue
		}

		result, evalErr := interp.Eval(buffer)
		if evalErr != nil {
			fmt.Fprintf(t, "error: %s\r\n", evalErr.Error())
		} else if s := result.String(); s != "" {
			fmt.Fprintf(t, "%s\r\n", s)
		}
		buffer = ""
		t.SetPrompt("% ")
	}
}
