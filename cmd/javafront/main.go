// Command javafront is the CLI front end: it wires source discovery,
// lexing, parsing, and the style-analysis pass together behind a small
// build/run/check command tree, modeled on jswag's flag-implication
// rules (`build` implies `--check --pass-through --analyze style`, `run`
// additionally implies `--run`).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var a jobArgs

	rootCmd := &cobra.Command{
		Use:   "javafront",
		Short: "A front end for a subset of the Java language",
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "more verbose log messages")
	rootCmd.PersistentFlags().BoolVar(&a.lossyDecoding, "lossy-decoding", false, "replace malformed input bytes instead of failing")
	rootCmd.PersistentFlags().StringVar(&a.encoding, "encoding", "utf-8", "source file encoding (files are always read as UTF-8)")

	checkCmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check files for language errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.files = args
			a.check = true
			return execJob(a)
		},
	}
	checkCmd.Flags().StringArrayVar(&a.analyze, "analyze", nil, "run the named analysis pass (repeatable)")

	buildCmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Check, analyze, and compile files with javac",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.files = args
			a.isBuildOrRun = true
			a.passThrough = true
			return execJob(a)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Build files, then execute the first one with java",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.files = args
			a.isBuildOrRun = true
			a.passThrough = true
			a.run = true
			return execJob(a)
		},
	}

	rootCmd.AddCommand(checkCmd, buildCmd, runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execJob(a jobArgs) error {
	verbosity := 1
	if a.verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	job, err := newJob(a)
	if err != nil {
		return err
	}
	return runJob(job)
}
