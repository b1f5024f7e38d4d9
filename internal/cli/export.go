package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/export"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session's dispatches",
	Long: `Export every sequence dispatched during a session.

The jsonl format writes zstd compressed JSON lines, one dispatch per line.
The txt format writes one token sequence per line.

Examples:
  cubeanim export --last
  cubeanim export --id <session_id> -o run.jsonl.zst
  cubeanim export --last --format txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "Export format (jsonl, txt)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: <id>.jsonl.zst, stdout for txt)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var idArgs []string
	if exportSessionID != "" {
		idArgs = []string{exportSessionID}
	}
	sessionID, err := resolveSessionID(db, idArgs, exportLast)
	if err != nil {
		return err
	}

	entries, err := export.FromJournal(db, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("session %s has no dispatches", sessionID)
	}

	switch strings.ToLower(exportFormat) {
	case "jsonl":
		path := exportOutput
		if path == "" {
			path = defaultExportName(sessionID)
		}
		if err := export.WriteFile(path, entries); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Exported %d dispatches to %s\n", len(entries), path)

	case "txt":
		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}
		writeTokenLines(w, entries)
		if exportOutput != "" {
			fmt.Printf("Exported %d dispatches to %s\n", len(entries), exportOutput)
		}

	default:
		return fmt.Errorf("unknown format: %s (use jsonl or txt)", exportFormat)
	}

	return nil
}

func defaultExportName(sessionID string) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("cubeanim_%s.jsonl.zst", short)
}

func writeTokenLines(w io.Writer, entries []export.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%-11s %s\n", e.Mode, e.Tokens)
	}
}
