package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-notebook-list/internal/tui/panel"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

// NewTuiCmd creates the `nbl tui` command.
func NewTuiCmd(svc **service.Service) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse notebooks in an interactive panel",
		Long: `Launch the notebook list panel.

Branches expand and collapse in place and stay that way across sessions.
Dropping files onto the terminal imports them into the notebooks directory.
New notebooks written by other programs show up while the panel is open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			s := *svc

			var opts []panel.Option
			if !noWatch {
				watcher, err := s.Watch()
				if err != nil {
					s.Logger.WithError(err).Warn("not watching notebooks directory")
				} else {
					defer watcher.Close()
					opts = append(opts, panel.WithWatcher(watcher))
				}
			}

			model := panel.New(s, opts...)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Don't watch the notebooks directory for new notebooks")
	return cmd
}
