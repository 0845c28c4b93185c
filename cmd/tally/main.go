// Command tally reports on exported counter files.
//
// Usage:
//
//	tally <command> [flags]
//
// Commands:
//
//	summarize  Summarize an exported data.json
//	status     Check a running tally-tui metrics endpoint
//	version    Print version information
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/tally/internal/analysis"
	"github.com/Mr-Dark-debug/tally/internal/export"
	"github.com/Mr-Dark-debug/tally/internal/log"
	"github.com/Mr-Dark-debug/tally/pkg/jsonutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	lg, err := log.New(
		log.WithLevel(log.WarnLevel),
		log.WithOutputPaths("stderr"),
		log.WithFields("app", "tally"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	os.Exit(run(os.Args[1:], os.Stdout, lg))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout io.Writer, lg *zap.SugaredLogger) int {
	if len(args) < 1 {
		printUsage(stdout)
		return 1
	}

	var err error
	switch args[0] {
	case "summarize":
		err = cmdSummarize(args[1:], stdout)
	case "status":
		err = cmdStatus(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "Tally v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage(stdout)
	default:
		lg.Errorw("unknown command", "command", args[0])
		printUsage(stdout)
		return 1
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		lg.Errorw("command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Tally: count things and keep the timestamps

Usage:
  tally <command> [flags]

Commands:
  summarize  Summarize an exported data.json
  status     Check a running tally-tui metrics endpoint
  version    Print version information

Run 'tally <command> --help' for details on each command.`)
}

// cmdSummarize reads an export and prints per-counter statistics.
func cmdSummarize(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stdout)
	file := fs.String("file", export.DefaultFileName, "Exported counters file")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := export.Read(*file)
	if err != nil {
		return err
	}
	report := analysis.Analyze(snap, time.Now())

	switch *outputFormat {
	case "json":
		if err := jsonutil.WritePretty(stdout, report); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	case "markdown":
		fmt.Fprint(stdout, analysis.FormatReport(report))
	default:
		return fmt.Errorf("unknown format %q", *outputFormat)
	}
	return nil
}

// cmdStatus queries the health endpoint of a tally-tui started with --metrics.
func cmdStatus(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(stdout)
	addr := fs.String("addr", "127.0.0.1:9464", "Metrics address of the running TUI")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := &http.Client{Timeout: 3 * time.Second}
	url := fmt.Sprintf("http://%s/health", *addr)
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("tally-tui is not serving metrics at %s: %w", *addr, err)
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}

	fmt.Fprintf(stdout, "tally-tui is running (status: %s)\n", health.Status)
	fmt.Fprintf(stdout, "  metrics: http://%s/metrics\n", *addr)
	return nil
}
