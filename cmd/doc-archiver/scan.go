package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-archiver/internal/pipeline"
	"github.com/pdiddy/doc-archiver/internal/walk"
	"github.com/pdiddy/doc-archiver/pkg/types"
)

// scanReport is the YAML document printed by scan.
type scanReport struct {
	Source    string           `yaml:"source"`
	Count     int              `yaml:"count"`
	Documents []types.Document `yaml:"documents"`
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <source_directory>",
		Short: "List the Word documents an archive run would include",
		Long: `Scan walks the source directory with the same rules as an archive run
(ignored directories, .doc and .docx only) and prints the documents it finds
as YAML. Nothing is converted or written.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		RunE: runScan,
	}
	cmd.Flags().String("exclude", "", "path to leave out, typically a planned output file")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	source := args[0]
	if err := pipeline.CheckSource(source); err != nil {
		return err
	}
	exclude, _ := cmd.Flags().GetString("exclude")

	docs, err := walk.Collect(source, exclude)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", source, err)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	report := scanReport{Source: abs, Count: len(docs), Documents: docs}
	if report.Documents == nil {
		report.Documents = []types.Document{}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding scan report: %w", err)
	}
	return enc.Close()
}
