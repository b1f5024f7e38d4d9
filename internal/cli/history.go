package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long:  `Display recent journal sessions. Subcommands show a session's dispatches or close a session left open by an interrupted run.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the dispatches of a session",
	Long: `Display every sequence dispatched during a session, in order, with
the centers each fix dispatch corrected.

Use --last to show the most recent session.`,
	RunE: runHistoryShow,
}

var historyEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active session",
	Long:  `Close the session recorded as active in the state file, e.g. after a crash.`,
	RunE:  runHistoryEnd,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its dispatches",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of sessions to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent session")

	historyCmd.AddCommand(historyEndCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	dispatchRepo := storage.NewDispatchRepository(db)
	sessions, err := sessionRepo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		fmt.Println("Start one with: cubeanim play")
		return nil
	}

	fmt.Printf("Recent sessions (showing %d):\n", len(sessions))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-10s  %-10s  %-6s  %s\n", "ID", "Started", "Duration", "Dispatches", "Speed", "Notes")
	fmt.Println("------------------------------------  --------------------  ----------  ----------  ------  -----")

	for _, s := range sessions {
		duration := "-"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}

		count, _ := dispatchRepo.Count(s.SessionID)

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		status := ""
		if s.EndedAt == nil {
			status = " (active)"
		}

		fmt.Printf("%-36s  %-20s  %-10s  %-10d  %-6.0f  %s%s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			count,
			s.Speed,
			notes,
			status,
		)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionID, err := resolveSessionID(db, args, showLast)
	if err != nil {
		return err
	}

	session, err := storage.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	dispatchRepo := storage.NewDispatchRepository(db)
	dispatches, err := dispatchRepo.GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get dispatches: %w", err)
	}
	byMode, err := dispatchRepo.CountByMode(sessionID)
	if err != nil {
		return fmt.Errorf("failed to count dispatches: %w", err)
	}

	fmt.Println("Session Details")
	fmt.Println("===============")
	fmt.Println()
	fmt.Printf("ID:      %s\n", session.SessionID)
	fmt.Printf("Started: %s\n", session.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if session.EndedAt != nil {
		fmt.Printf("Ended:   %s\n", session.EndedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if session.FixFlags != "" {
		fmt.Printf("Fix:     %s\n", session.FixFlags)
	}
	fmt.Printf("Speed:   %.0f°/s\n", session.Speed)
	if session.Notes != nil && *session.Notes != "" {
		fmt.Printf("Notes:   %s\n", *session.Notes)
	}
	fmt.Println()

	fmt.Println("Dispatches")
	fmt.Println("----------")
	for _, mode := range []string{"shuffling", "solving", "fixing", "customizing"} {
		if n := byMode[mode]; n > 0 {
			fmt.Printf("%-12s %d\n", mode, n)
		}
	}

	for _, d := range dispatches {
		at := formatDuration(time.Duration(d.TsMs) * time.Millisecond)
		fmt.Printf("\n#%d %s at %s (%d moves)\n", d.DispatchIndex, d.Mode, at, d.MoveCount)
		for _, line := range wrapTokens(d.Tokens, 60) {
			fmt.Printf("  %s\n", line)
		}
		fixes, _ := dispatchRepo.GetFixes(d.DispatchID)
		for _, f := range fixes {
			fmt.Printf("  fixed %s center from %d°\n", f.Face, f.Orientation)
		}
	}

	return nil
}

func runHistoryEnd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if !stateFile.HasActiveSession() {
		return fmt.Errorf("no active session")
	}

	sessionID := stateFile.ActiveSessionID()
	session := recorder.NewSession(db, stateFile, newLogger())
	if err := session.Resume(sessionID); err != nil {
		_ = stateFile.ClearActiveSession()
		return fmt.Errorf("failed to resume session: %w", err)
	}
	if err := session.End(); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	fmt.Printf("Session ended: %s (%d dispatches)\n", sessionID, session.DispatchCount())
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

// resolveSessionID picks the session named by args, or the latest one.
func resolveSessionID(db *storage.DB, args []string, last bool) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !last {
		return "", fmt.Errorf("please provide a session ID or use --last")
	}
	session, err := storage.NewSessionRepository(db).GetLast()
	if err != nil {
		return "", fmt.Errorf("failed to get last session: %w", err)
	}
	if session == nil {
		return "", fmt.Errorf("no sessions found")
	}
	return session.SessionID, nil
}

// wrapTokens splits a compact token string into lines of at most width.
func wrapTokens(tokens string, width int) []string {
	if width <= 0 || len(tokens) <= width {
		if tokens == "" {
			return nil
		}
		return []string{tokens}
	}
	var lines []string
	for len(tokens) > width {
		lines = append(lines, tokens[:width])
		tokens = tokens[width:]
	}
	if tokens != "" {
		lines = append(lines, tokens)
	}
	return lines
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
