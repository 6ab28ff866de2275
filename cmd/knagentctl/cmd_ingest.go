package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index .txt and .md documents with role metadata derived from file names",
	Long: `Walks the data directory (INGEST_DATA_DIR unless given), splits every document,
embeds the chunks and replaces whatever was previously stored for the same file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := cfg.Ingestion.DataDir
	if len(args) == 1 {
		dir = args[0]
	}

	c, err := loadContainer()
	if err != nil {
		return err
	}
	if err := c.ConsumerService.Consume(cmd.Context()); err != nil {
		return err
	}

	color.Cyan("Ingesting %s into %q...", dir, cfg.Retrieval.Collection)
	report, err := c.IngestionService.IngestDirectory(cmd.Context(), dir)
	if err != nil {
		return err
	}

	color.Green("Indexed %d documents (%d chunks)", report.Documents, report.Chunks)
	for _, f := range report.Failed {
		color.Red("  failed: %s", f)
	}
	return nil
}
