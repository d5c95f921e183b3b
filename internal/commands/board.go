package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/store"
	"github.com/almasgali/planhub/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"kanban"},
	Short:   "Open the interactive kanban board",
	Long: `Open the kanban board. Tasks are grouped into backlog, in-progress,
review and done columns; moving a task writes the status change through
immediately.`,
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		if err := tui.RunBoardTUI(s); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
