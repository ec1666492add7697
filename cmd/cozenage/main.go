// Command cozenage is the REPL and script runner for the interpreter.
// With no file argument it reads top-level forms from standard input,
// prompting PS1 before each one and PS2 while a form is unfinished
// (unbalanced parens or an open string). With a file argument it loads
// and evaluates that file's forms in order and exits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/mattn/go-isatty"

	"cozenage/internal/builtin"
	"cozenage/internal/eval"
	"cozenage/internal/printer"
	"cozenage/internal/reader"
	"cozenage/internal/value"
)

const (
	ps1 = "> "
	ps2 = "..."
)

// gotSigint is the process-wide cancellation flag (spec §5): the signal
// handler sets it, and the REPL's read loop consults it between lines
// to abort an in-progress multi-line read.
var gotSigint atomic.Bool

func main() {
	os.Exit(run())
}

// run holds the entire CLI's decision tree and returns an exit code; it
// is split out from main so the testscript harness can invoke it
// in-process as a named subcommand instead of forking a real binary.
func run() int {
	var (
		loadPath = flag.String("load", "", "load and evaluate a file before the REPL (or instead of it, with a script argument)")
		evalExpr = flag.String("e", "", "evaluate a single expression and print its result, then exit")
		noColor  = flag.Bool("no-color", false, "disable REPL prompt colouring")
		showVer  = flag.Bool("v", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println("cozenage 0.1.0")
		return 0
	}

	root := value.NewEnvironment(nil)
	builtin.Register(root, eval.Apply, eval.Eval)

	if *evalExpr != "" {
		return runString(root, *evalExpr, true)
	}

	if *loadPath != "" {
		if code := runFile(root, *loadPath); code != 0 {
			return code
		}
		if flag.NArg() == 0 {
			return 0
		}
	}

	if flag.NArg() > 0 {
		return runFile(root, flag.Arg(0))
	}

	return runREPL(root, *noColor)
}

// runFile loads and evaluates every top-level form in path, stopping
// (and returning a non-zero code) on the first read or eval error.
func runFile(root *value.Environment, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cozenage: %v\n", err)
		return 1
	}
	p := reader.NewParser(string(src))
	for {
		datum, rerr := p.ReadDatum()
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "cozenage: %s: %v\n", path, rerr)
			return 1
		}
		if datum == nil {
			return 0
		}
		result := eval.Eval(root, datum)
		if value.IsError(result) {
			fmt.Fprintf(os.Stderr, "cozenage: %s\n", printer.Write(result))
			return 1
		}
	}
}

// runString evaluates every form in src against root, optionally
// printing each non-unspecified result (repl mode), and returns an
// exit code.
func runString(root *value.Environment, src string, print bool) int {
	p := reader.NewParser(src)
	for {
		datum, rerr := p.ReadDatum()
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "cozenage: %v\n", rerr)
			return 1
		}
		if datum == nil {
			return 0
		}
		result := eval.Eval(root, datum)
		if value.IsError(result) {
			fmt.Fprintf(os.Stderr, "cozenage: %s\n", printer.Write(result))
			return 1
		}
		if print && result != value.Unspecified {
			fmt.Println(printer.Print(result, printer.ModeRepl))
		}
	}
}

// runREPL drives the primary/continuation prompt loop described in
// spec §6: `exit` at the primary prompt and EOF both exit with status
// 0; a SIGINT during a multi-line read aborts that read and returns to
// PS1 rather than killing the process.
func runREPL(root *value.Environment, noColor bool) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		for range sigCh {
			gotSigint.Store(true)
		}
	}()

	colorize := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Println("cozenage REPL - enter `exit` or press ^D to quit")
	for {
		printPrompt(ps1, colorize)
		var src strings.Builder
		for {
			if !scanner.Scan() {
				return 0
			}
			line := scanner.Text()
			if src.Len() == 0 && strings.TrimSpace(line) == "exit" {
				return 0
			}
			src.WriteString(line)
			src.WriteByte('\n')
			if gotSigint.Swap(false) {
				src.Reset()
				fmt.Println()
				break
			}
			if !reader.NeedsMore(src.String()) {
				break
			}
			printPrompt(ps2, colorize)
		}
		if src.Len() == 0 {
			continue
		}
		evalTopLevel(root, src.String())
	}
}

func evalTopLevel(root *value.Environment, src string) {
	p := reader.NewParser(src)
	for {
		datum, rerr := p.ReadDatum()
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "; %v\n", rerr)
			return
		}
		if datum == nil {
			return
		}
		result := eval.Eval(root, datum)
		if result == value.Unspecified {
			continue
		}
		fmt.Println(printer.Print(result, printer.ModeRepl))
	}
}

func printPrompt(prompt string, colorize bool) {
	if colorize {
		fmt.Print("\033[1;32m" + prompt + "\033[0m")
	} else {
		fmt.Print(prompt)
	}
}
