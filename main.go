// codeatlas statically analyzes a project tree and emits a dense code
// inventory: structure, dependencies, per-file symbols, and import cycles.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mpeel/codeatlas/internal/project"
	"github.com/mpeel/codeatlas/internal/report"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output         string
		format         string
		depth          int
		extensions     []string
		maxFiles       int
		maxSymbolFiles int
		quiet          bool
	)

	cmd := &cobra.Command{
		Use:           "codeatlas [path]",
		Short:         "Static project analyzer producing a compact code inventory",
		Long:          "codeatlas scans a project tree and reports its structure, dependencies,\ndeclared symbols per file, and internal import cycles.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			if format != "markdown" && format != "json" {
				return fmt.Errorf("unknown format %q (want markdown or json)", format)
			}

			logLevel := slog.LevelInfo
			if quiet {
				logLevel = slog.LevelWarn
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

			limits := project.DefaultLimits()
			limits.MaxDepth = depth
			limits.Extensions = extensions
			if maxFiles > 0 {
				limits.MaxCountedFiles = maxFiles
			}
			if maxSymbolFiles > 0 {
				limits.MaxSymbolFiles = maxSymbolFiles
			}

			analyzer, err := project.New(root, limits, log)
			if err != nil {
				return err
			}
			analysis, err := analyzer.Analyze()
			if err != nil {
				return err
			}

			var content []byte
			if format == "json" {
				content, err = report.JSON(analysis)
				if err != nil {
					return err
				}
			} else {
				content = []byte(report.Markdown(analysis))
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(content)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			log.Info("report written", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown or json")
	cmd.Flags().IntVar(&depth, "depth", 10, "maximum directory depth for the structure scan")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "only analyze these file extensions (e.g. py,js)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "line counting stops after this many files (default 1000)")
	cmd.Flags().IntVar(&maxSymbolFiles, "max-symbol-files", 0, "cap on symbol-analyzed files (default 200)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}
