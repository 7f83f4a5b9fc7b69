package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	"github.com/mattsolo1/grove-notebook-list/pkg/panel"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var importUlog = grovelogging.NewUnifiedLogger("grove-notebook-list.cmd.import")

func NewImportCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Copy notebook files into the notebooks directory",
		Long: `Import notebook files as if they had been dropped on the panel.

Every file is read concurrently and stored under its base name. Existing
notebooks are never overwritten. Unreadable files are reported and skipped.

Examples:
  nbl import ~/Downloads/analysis.ipynb
  nbl import *.ipynb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			imported, err := importFiles(ctx, s, args)
			for _, item := range imported {
				importUlog.Success("Notebook imported").
					Field("item", item).
					Pretty(fmt.Sprintf("Imported: %s", item)).
					PrettyOnly().
					Log(ctx)
			}
			return err
		},
	}

	return cmd
}

// importFiles drops files on a headless panel and stores every delivered
// notebook. It returns the stored item paths and any read or write errors.
func importFiles(ctx context.Context, s *service.Service, files []string) ([]string, error) {
	ctrl := s.NewController()

	var (
		imported []string
		writeErr []error
	)
	unsubscribe := ctrl.Subscribe(events.ListenerFunc(func(e events.Event) {
		ev, ok := e.(events.ImportNotebook)
		if !ok || !ev.Dropped {
			return
		}
		item, err := s.ImportNotebook(ev.Name, ev.Content)
		if err != nil {
			writeErr = append(writeErr, err)
			return
		}
		imported = append(imported, item)
	}))
	defer unsubscribe()

	sources := make([]panel.Source, len(files))
	for i, f := range files {
		sources[i] = panel.FileSource(f)
	}

	ctrl.DragEnter()
	readErr := ctrl.Drop(ctx, sources...)
	return imported, errors.Join(readErr, errors.Join(writeErr...))
}
