// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/listic-lab/pubgraph/internal/ingest"
	"github.com/listic-lab/pubgraph/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file|database]",
	Short: "Parse a raw source export into uniform publication records",
	Long: `Ingest parses one source export (HAL JSON, Google Scholar CSV, or a
relational SQLite database) into uniform publication records under
data/records/. Re-ingesting a source replaces its record file. Malformed
rows are counted and skipped, never fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("source", "", "source system: hal, scholar, or relational")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	sourceFlag, _ := cmd.Flags().GetString("source")

	var source types.SourceSystem
	switch sourceFlag {
	case "hal":
		source = types.SourceHAL
	case "scholar":
		source = types.SourceScholarCSV
	case "relational":
		source = types.SourceRelational
	case "":
		return fmt.Errorf("source required: pass --source hal, scholar, or relational")
	default:
		return fmt.Errorf("unknown source %q: use hal, scholar, or relational", sourceFlag)
	}

	var out ingest.ParseOutput
	if source == types.SourceRelational {
		db, err := sql.Open("sqlite3", args[0])
		if err != nil {
			return fmt.Errorf("opening database %s: %w", args[0], err)
		}
		defer db.Close()

		out, err = ingest.ParseRelational(context.Background(), db)
		if err != nil {
			return err
		}
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		out, err = ingest.Parse(source, f)
		if err != nil {
			return err
		}
	}

	path, err := ingest.WriteRecordFile(recordsDir(pipelineConfig(cmd)), ingest.RecordFile{
		Source:       source,
		Publications: out.Publications,
		Skipped:      out.Skipped,
		Countries:    out.Countries,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d publication(s) from %s (%d skipped)\n",
		len(out.Publications), sourceFlag, out.Skipped)
	fmt.Println("Wrote", path)
	return nil
}
