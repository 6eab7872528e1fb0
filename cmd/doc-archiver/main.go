// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-archiver CLI. The root command
// archives every Word document under a directory into one Markdown file;
// scan lists what would be archived.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-archiver/internal/convert"
	"github.com/pdiddy/doc-archiver/internal/extract"
	"github.com/pdiddy/doc-archiver/internal/pipeline"
	"github.com/pdiddy/doc-archiver/internal/workspace"
	"github.com/pdiddy/doc-archiver/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// errUsage marks argument errors that should print the usage text.
var errUsage = errors.New("missing arguments")

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "doc-archiver <source_directory> <output_file>",
		Short: "Archive every Word document in a directory tree into one Markdown file",
		Long: `doc-archiver walks a source directory, converts legacy .doc files to .docx
with headless LibreOffice (soffice), extracts each document's text as Markdown,
and appends it to a single output file under a header naming the source file
and its path relative to the source directory.

Extraction uses the markitdown CLI when it is installed, the markitdown
container image when docker or podman can run it, and a built-in .docx reader
otherwise. Directories such as .git, node_modules, bin, and obj are skipped.`,
		Example: `  doc-archiver ~/Documents/Exams all_exams.md`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(v, args[0], args[1], stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./doc-archiver.yaml or ~/.config/doc-archiver/doc-archiver.yaml)")
	pf.BoolP("verbose", "v", false, "log debug diagnostics to stderr")
	root.Flags().String("backend", string(types.BackendAuto), "extraction backend: auto, markitdown, container, or native")
	root.Flags().String("soffice", convert.DefaultSoffice, "LibreOffice executable used to convert .doc files")
	root.Flags().String("workspace-dir", "", "parent directory for conversion workspaces (default: system temp dir)")

	_ = v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = v.BindPFlag("extract.backend", root.Flags().Lookup("backend"))
	_ = v.BindPFlag("convert.soffice", root.Flags().Lookup("soffice"))
	_ = v.BindPFlag("workspace.dir", root.Flags().Lookup("workspace-dir"))

	root.AddCommand(newScanCmd(), newVersionCmd())
	return root
}

// initConfig layers defaults, an optional YAML config file, DOC_ARCHIVER_*
// environment variables, and flags into v, then sets up logging.
func initConfig(cmd *cobra.Command, v *viper.Viper, stderr io.Writer) error {
	defaults := types.DefaultArchiveConfig()
	v.SetDefault("convert.soffice", defaults.Convert.Soffice)
	v.SetDefault("extract.backend", string(defaults.Extract.Backend))
	v.SetDefault("extract.markitdown", defaults.Extract.Markitdown)
	v.SetDefault("extract.image", defaults.Extract.Image)
	v.SetDefault("workspace.dir", "")
	v.SetDefault("verbose", false)

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("doc-archiver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "doc-archiver"))
		}
	}

	v.SetEnvPrefix("DOC_ARCHIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
	}

	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func loadConfig(v *viper.Viper) (types.ArchiveConfig, error) {
	var cfg types.ArchiveConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// errSourceMissing is reported after its message has already been printed.
var errSourceMissing = errors.New("source directory missing")

func runArchive(v *viper.Viper, sourceDir, outputPath string, stdout, stderr io.Writer) error {
	if err := pipeline.CheckSource(sourceDir); err != nil {
		fmt.Fprintf(stderr, "Error: Source directory '%s' does not exist.\n", sourceDir)
		return errSourceMissing
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	ext, err := extract.New(cfg.Extract)
	if err != nil {
		return err
	}
	slog.Debug("extractor ready", "backend", extract.Backend(ext))

	conv := convert.New(cfg.Convert.Soffice, workspace.NewManager(cfg.Workspace.Dir))
	if !conv.Available() {
		slog.Debug("legacy converter unavailable; .doc files will be skipped", "binary", conv.Binary())
	}

	res, err := pipeline.New(conv, ext, stdout, stderr).Run(sourceDir, outputPath)
	if err != nil {
		return err
	}
	if res.HasFailures() {
		slog.Warn("some documents could not be archived",
			"failed", res.Failed, "skipped", res.Skipped, "total", res.Total())
	} else {
		slog.Info("archive complete", "archived", res.Archived, "skipped", res.Skipped, "total", res.Total())
	}
	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%s\n", cmd.UsageString())
	case errors.Is(err, errSourceMissing):
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
