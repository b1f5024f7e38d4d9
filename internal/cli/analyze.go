package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/analysis"
	"github.com/SeamusWaldron/cubeanim/internal/export"
)

var (
	analyzeLast bool
	analyzeFile string
	analyzeMinN int
	analyzeMaxN int
	analyzeTopK int
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [session-id]",
	Short: "Summarize a session and mine repeated sequences",
	Long: `Compute dispatch statistics for a session: tokens saved by
simplification, half turns, fix dispatches and face usage. Repeated token
sequences (n-grams) across all dispatches are listed as well.

Examples:
  cubeanim analyze --last
  cubeanim analyze --file run.jsonl.zst --min 4 --max 6
  cubeanim analyze <session_id> --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeLast, "last", false, "Analyze the last session")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Analyze an exported .jsonl.zst file instead of the database")
	analyzeCmd.Flags().IntVar(&analyzeMinN, "min", 3, "Shortest n-gram")
	analyzeCmd.Flags().IntVar(&analyzeMaxN, "max", 6, "Longest n-gram")
	analyzeCmd.Flags().IntVar(&analyzeTopK, "top", 3, "N-grams shown per length")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
}

type analyzeReport struct {
	Summary *analysis.SessionSummary `json:"summary"`
	NGrams  *analysis.NGramReport    `json:"ngrams"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries(args)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no dispatches to analyze")
	}

	report, err := buildReport(entries, analyzeMinN, analyzeMaxN, analyzeTopK)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(out, report)
	return nil
}

// loadEntries reads dispatches from --file or from the journal.
func loadEntries(args []string) ([]export.Entry, error) {
	if analyzeFile != "" {
		return export.ReadFile(analyzeFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sessionID, err := resolveSessionID(db, args, analyzeLast)
	if err != nil {
		return nil, err
	}
	return export.FromJournal(db, sessionID)
}

func buildReport(entries []export.Entry, minN, maxN, topK int) (*analyzeReport, error) {
	summary, err := analysis.Summarize(entries)
	if err != nil {
		return nil, err
	}

	var all []cubeanim.Token
	for _, e := range entries {
		tokens, err := cubeanim.ParseTokens(e.Tokens)
		if err != nil {
			return nil, err
		}
		all = append(all, tokens...)
	}

	return &analyzeReport{
		Summary: summary,
		NGrams:  analysis.MineNGrams(all, minN, maxN, topK),
	}, nil
}

func printReport(w io.Writer, r *analyzeReport) {
	s := r.Summary
	fmt.Fprintln(w, "Session Analysis")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)
	if s.SessionID != "" {
		fmt.Fprintf(w, "Session:     %s\n", s.SessionID)
	}
	fmt.Fprintf(w, "Dispatches:  %d\n", s.Dispatches)

	modes := make([]string, 0, len(s.ByMode))
	for m := range s.ByMode {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	for _, m := range modes {
		fmt.Fprintf(w, "  %-11s %d\n", m, s.ByMode[m])
	}

	fmt.Fprintf(w, "Tokens:      %d (raw %d, saved %d, %.0f%%)\n", s.Tokens, s.RawTokens, s.Saved, s.Efficiency*100)
	fmt.Fprintf(w, "Moves:       %d (%d half turns)\n", s.Moves, s.HalfTurns)
	if s.Fixes > 0 {
		fmt.Fprintf(w, "Fixes:       %d centers, %d tokens\n", s.Fixes, s.FixTokens)
	}
	if s.Profile.MostUsedFace != "" {
		fmt.Fprintf(w, "Most used:   %s (%d turns, %d reversed overall)\n",
			s.Profile.MostUsedFace, s.Profile.FaceCounts[s.Profile.MostUsedFace], s.Profile.ReverseCount)
	}

	lengths := make([]int, 0, len(r.NGrams.TopNGrams))
	for n := range r.NGrams.TopNGrams {
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repeated sequences")
	fmt.Fprintln(w, "------------------")
	for _, n := range lengths {
		for _, ng := range r.NGrams.TopNGrams[n] {
			fmt.Fprintf(w, "  %-14s x%d\n", ng.Sequence, ng.Count)
		}
	}
}
