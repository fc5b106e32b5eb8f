/*
Tableau checks whether every infinite trace of a transition system satisfies
a set of LTL formulas.

It reads a transition system file and a query batch file (see section 6 of
the system design for both formats), runs the full parse-closure-automaton-
product-emptiness pipeline once per query, and prints one verdict per line to
stdout: "1" if the transition system satisfies the query, "0" otherwise, in
the same order the queries appear in the batch.

Usage:

	tableau [flags]

The flags are:

	-t, --ts FILE
		The transition system file (section 6.1 format).

	-q, --queries FILE
		The query batch file (section 6.2 format).

	-c, --config FILE
		Read defaults from the given TOML config file before applying flags.

	-v, --verbose
		Additionally log the size of every structure built while answering
		each query (closure, elementary sets, automaton states).

	--no-color
		Disable ANSI color in diagnostic output, regardless of terminal
		detection.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/corvid-labs/tableau/pkg/config"
	"github.com/corvid-labs/tableau/pkg/diag"
	"github.com/corvid-labs/tableau/pkg/ts"
	"github.com/corvid-labs/tableau/pkg/verifier"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates every verdict was produced without error.
	ExitSuccess = iota
	// ExitUsageError indicates the command line was malformed.
	ExitUsageError
	// ExitInputError indicates a query in the batch could not be verified.
	// A TS or query-batch file that cannot be opened or parsed exits with
	// status 1 through diag.Fatal instead.
	ExitInputError
)

var (
	returnCode  = ExitSuccess
	flagTS      = pflag.StringP("ts", "t", "", "Transition system file")
	flagQueries = pflag.StringP("queries", "q", "", "Query batch file")
	flagConfig  = pflag.StringP("config", "c", "", "TOML config file to read defaults from")
	flagVerbose = pflag.BoolP("verbose", "v", false, "Log structure sizes for every query")
	flagNoColor = pflag.Bool("no-color", false, "Disable ANSI color in diagnostics")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			if _, ok := panicErr.(diag.ContractViolation); ok {
				fmt.Fprintf(os.Stderr, "internal error: %v\n%s", panicErr, debug.Stack())
				os.Exit(2)
			}
			panic(panicErr)
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		diag.Fatal(err)
	}
	cfg = cfg.FillDefaults()

	if *flagNoColor || !*cfg.Color {
		color.NoColor = true
	}
	verbose := *flagVerbose || cfg.Verbose

	tsPath, queryPath := cfg.TSPath, cfg.QueryPath
	if *flagTS != "" {
		tsPath = *flagTS
	}
	if *flagQueries != "" {
		queryPath = *flagQueries
	}
	if tsPath == "" || queryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tableau --ts FILE --queries FILE [flags]")
		returnCode = ExitUsageError
		return
	}

	tsFile, err := os.Open(tsPath)
	if err != nil {
		diag.Fatal(fmt.Errorf("%w: %s", diag.ErrFileOpen, err))
	}
	defer tsFile.Close()

	tsys, err := ts.Load(tsFile)
	if err != nil {
		diag.Fatal(err)
	}

	queryFile, err := os.Open(queryPath)
	if err != nil {
		diag.Fatal(fmt.Errorf("%w: %s", diag.ErrFileOpen, err))
	}
	defer queryFile.Close()

	batch, err := verifier.LoadQueryBatch(queryFile)
	if err != nil {
		diag.Fatal(err)
	}

	verdicts, err := verifier.RunBatch(tsys, batch, verbose)
	if err != nil {
		log.Printf("query failed: %s", err)
		returnCode = ExitInputError
		return
	}

	for _, v := range verdicts {
		if v {
			fmt.Println("1")
		} else {
			fmt.Println("0")
		}
	}
}
