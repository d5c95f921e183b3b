package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data to a JSON snapshot file",
	Long: `Export the full snapshot (projects, tasks, time entries, users) to a
JSON file. Defaults to planhub-export-<date>.json in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		path := fmt.Sprintf("planhub-export-%s.json", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			path = args[0]
		}

		data, err := s.ExportSnapshot()
		if err != nil {
			fmt.Printf("Error exporting data: %v\n", err)
			return
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Printf("Error writing export file: %v\n", err)
			return
		}

		fmt.Printf("📦 Exported %d project(s), %d task(s) and %d time entr%s to %s\n",
			len(s.Projects()), len(s.Tasks()), len(s.TimeEntries()), pluralY(len(s.TimeEntries())), path)
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON snapshot file, replacing all data",
	Long: `Import a snapshot file previously produced by 'planhub export'. The
entire current state is replaced. On a malformed file nothing changes.`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading import file: %v\n", err)
			return
		}

		if err := s.ImportSnapshot(data); err != nil {
			fmt.Printf("Error importing data: %v\n", err)
			fmt.Println("Check the file format; the existing data was left unchanged.")
			return
		}

		fmt.Printf("📥 Imported %d project(s), %d task(s) and %d time entr%s\n",
			len(s.Projects()), len(s.Tasks()), len(s.TimeEntries()), pluralY(len(s.TimeEntries())))
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and reseed the default team",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Println("This deletes every project, task and time entry and cannot be undone.")
			fmt.Println("Re-run with --force to confirm.")
			return
		}

		s.ResetToDefaults()
		fmt.Println("♻️  All data cleared, default team reseeded.")
	}),
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation")
}
