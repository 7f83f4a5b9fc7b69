package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-notebook-list/pkg/pathtree"
	"github.com/mattsolo1/grove-notebook-list/pkg/render"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var treeUlog = grovelogging.NewUnifiedLogger("grove-notebook-list.cmd.tree")

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		treeJSON   bool
		treeExpand bool
		treeStdin  bool
	)

	cmd := &cobra.Command{
		Use:     "tree [paths...]",
		Short:   "Print notebooks as a collapsible tree",
		Aliases: []string{"ls"},
		Long: `Print notebook paths as a tree.

Paths come from the arguments, from stdin with --stdin, or from the notebooks
directory. Branches expanded in the TUI are shown expanded here too.

Examples:
  nbl tree                          # Notebooks directory
  nbl tree --expand                 # Everything expanded
  nbl tree foo/bar foo/baz qux      # Arbitrary paths
  find . -name '*.ipynb' | nbl tree --stdin --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			items, err := collectItems(s, args, treeStdin, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if treeJSON {
				data, err := json.Marshal(pathtree.Build(items))
				if err != nil {
					return fmt.Errorf("marshal tree: %w", err)
				}
				var out bytes.Buffer
				if err := json.Indent(&out, data, "", "  "); err != nil {
					return fmt.Errorf("indent tree: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.String())
				return nil
			}

			if len(items) == 0 {
				treeUlog.Info("No notebooks found").
					Field("notebooks_dir", s.Config.NotebooksDir).
					Pretty(fmt.Sprintf("No notebooks found in %s", s.Config.NotebooksDir)).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			ctrl := s.NewController()
			if err := ctrl.Init(); err != nil {
				s.Logger.WithError(err).Warn("could not read panel prefs")
			}
			ctrl.SetItems(items)
			if treeExpand {
				ctrl.Renderer().ExpandAll()
			}

			treeUlog.Info("Notebook tree").
				Field("items", len(items)).
				Pretty(formatRows(ctrl.Renderer().Rows())).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&treeJSON, "json", false, "Output the path tree as JSON")
	cmd.Flags().BoolVarP(&treeExpand, "expand", "e", false, "Expand every branch")
	cmd.Flags().BoolVar(&treeStdin, "stdin", false, "Read paths from stdin, one per line")

	return cmd
}

func collectItems(s *service.Service, args []string, fromStdin bool, stdin io.Reader) ([]string, error) {
	switch {
	case len(args) > 0:
		return args, nil
	case fromStdin:
		return readLines(stdin)
	default:
		return s.ListNotebooks()
	}
}

func readLines(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, strings.TrimPrefix(line, "./"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return items, nil
}

// formatRows draws visible rows with two spaces of indent per level.
func formatRows(rows []render.Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Repeat("  ", row.Depth))
		if row.Branch != nil {
			marker := "▸"
			if row.Branch.Expanded {
				marker = "▾"
			}
			fmt.Fprintf(&b, "%s %s/\n", marker, row.Branch.Name())
			continue
		}
		fmt.Fprintf(&b, "  %s\n", row.Leaf.Name())
	}
	return strings.TrimSuffix(b.String(), "\n")
}
