package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/batch"
	"rill/internal/diag"
	"rill/internal/diagfmt"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [batch.rlb|directory]",
	Short: "Render lifetime diagnostics from solver batch files",
	Long: `Render lifetime diagnostics from solver conflict batches.
With no argument the batch directory comes from rill.toml ([diagnose].batches).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("with-helps", false, "include help suggestions in output")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("relative-to", "", "emit file paths relative to this directory")
	diagCmd.Flags().Bool("disk-cache", false, "serve unchanged batches from the report cache")
	diagCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	withHelps, err := cmd.Flags().GetBool("with-helps")
	if err != nil {
		return fmt.Errorf("failed to get with-helps flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	relativeTo, err := cmd.Flags().GetString("relative-to")
	if err != nil {
		return fmt.Errorf("failed to get relative-to flag: %w", err)
	}
	if fullPath && relativeTo != "" {
		return fmt.Errorf("--fullpath and --relative-to are mutually exclusive")
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	// With no argument the manifest decides where the batches live.
	var batchPath string
	if len(args) == 1 {
		batchPath = args[0]
	} else {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s", noRillTomlMessage)
		}
		batchPath, err = resolveManifestBatchDir(manifest)
		if err != nil {
			return err
		}
		if jobs == 0 {
			jobs = manifest.Config.Diagnose.Jobs
		}
	}

	files, err := collectBatchFiles(batchPath)
	if err != nil {
		return err
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if relativeTo != "" {
		pathMode = diagfmt.PathModeRelative
	}

	opts := batch.Options{
		Jobs:           jobs,
		BaseDir:        relativeTo,
		MaxDiagnostics: maxDiagnostics,
		IgnoreWarnings: noWarnings,
		Timings:        showTimings,
		Pretty: diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowHelps: withHelps,
		},
	}
	// The cache stores rendered text, which only the pretty path reuses.
	if enableDiskCache && format == "pretty" {
		cache, err := batch.OpenDiskCache("rill")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer traceCleanup()
	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	useTUI := format == "pretty" && !quiet && shouldUseTUI(mode)
	var results []batch.Result
	if useTUI {
		results, _, err = runDiagnoseWithUI(cmd.Context(), "diagnosing batches", files, opts)
	} else {
		results, _, err = batch.Diagnose(cmd.Context(), files, opts)
	}
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	exit := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			exit = 1
			continue
		}
		if res.Errors > 0 {
			exit = 1
		}
	}

	switch format {
	case "pretty":
		printed := 0
		for _, res := range results {
			if res.Err != nil || res.Rendered == "" {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			fmt.Fprint(os.Stdout, res.Rendered)
			printed++
		}
	case "short":
		for _, res := range results {
			if res.Err != nil || res.Bag == nil {
				continue
			}
			output := diag.FormatGoldenDiagnostics(res.Bag.Items(), res.Unit.Files, withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              maxDiagnostics,
			IncludeNotes:     withNotes,
			IncludeLabels:    true,
			IncludeHelps:     withHelps,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, res := range results {
			if res.Err != nil || res.Bag == nil {
				continue
			}
			output[res.Path] = diagfmt.BuildDiagnosticsOutput(res.Bag, res.Unit.Files, jsonOpts)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if !quiet && format == "pretty" {
		errs, warns := 0, 0
		for _, res := range results {
			errs += res.Errors
			if !noWarnings {
				warns += res.Warnings
			}
		}
		fmt.Fprintf(os.Stdout, "\n%d error(s), %d warning(s) across %d batch(es)\n",
			errs, warns, len(files))
	}

	if showTimings {
		for _, res := range results {
			if res.Timing == nil {
				continue
			}
			fmt.Fprintf(os.Stderr, "%s:\n", res.Path)
			for _, s := range res.Timing.Stages {
				note := ""
				if s.Note != "" {
					note = "  // " + s.Note
				}
				fmt.Fprintf(os.Stderr, "  %-8s %7.2f ms%s\n", s.Name, s.DurationMS, note)
			}
			fmt.Fprintf(os.Stderr, "  %-8s %7.2f ms\n", "total", res.Timing.TotalMS)
		}
	}

	if exit != 0 {
		// os.Exit skips deferred cleanups, flush them by hand.
		profCleanup()
		traceCleanup()
		os.Exit(exit)
	}
	return nil
}
