package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and journal status",
	Long:  `Display the effective configuration, the journal database, and any session left active.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Load state file
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	fmt.Println("cubeanim Status")
	fmt.Println("===============")
	fmt.Println()

	// Configuration
	fixed := recorder.FormatFlags(cfg.FixRequired.Flags())
	if fixed == "" {
		fixed = "none"
	}
	fmt.Printf("Speed:        %.0f°/s at %d fps\n", cfg.Speed, cfg.FrameRate)
	fmt.Printf("Fix centers:  %s\n", fixed)
	fmt.Printf("Shuffle:      %d-%d moves\n", cfg.Shuffle.Min, cfg.Shuffle.Max)
	fmt.Printf("Observer:     %s\n", cfg.ObserverAddr)
	presets := config.ListPresets()
	sort.Strings(presets)
	fmt.Printf("Presets:      %s\n", strings.Join(presets, ", "))
	fmt.Println()

	// Database info
	path := getDBPath(cfg)
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database: %s\n", path)

	db, err := openDB(cfg)
	if err == nil {
		defer db.Close()
		schemaVersion, _ := db.CurrentVersion()
		fmt.Printf("Schema version: %d\n", schemaVersion)

		sessionRepo := storage.NewSessionRepository(db)
		if last, _ := sessionRepo.GetLast(); last != nil {
			fmt.Printf("Last session: %s (%s)\n", last.SessionID, last.StartedAt.Local().Format(time.RFC3339))
		}
		all, _ := sessionRepo.List(10000)
		fmt.Printf("Total sessions: %d\n", len(all))
	} else {
		fmt.Printf("Database error: %v\n", err)
	}

	fmt.Println()

	// Active session
	if active, ok := stateFile.ActiveSession(); ok {
		fmt.Printf("Active session: %s\n", active.ID)
		fixes := active.FixFlags
		if fixes == "" {
			fixes = "none"
		}
		fmt.Printf("  Started: %s  Speed: %g deg/s  Fixes: %s\n",
			active.StartedAt.Local().Format("2006-01-02 15:04:05"), active.Speed, fixes)
		fmt.Println("  (Use 'cubeanim history end' to close it)")
	} else {
		fmt.Println("No active session")
	}

	return nil
}
