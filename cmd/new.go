package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-notebook-list/pkg/pathtree"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var newUlog = grovelogging.NewUnifiedLogger("grove-notebook-list.cmd.new")

func NewNewCmd(svc **service.Service) *cobra.Command {
	var (
		dir    string
		noEdit bool
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create an empty notebook",
		Long: `Create an empty notebook in the notebooks directory.

The file name is derived from the title. Existing notebooks are never
overwritten; a numeric suffix is added instead.

Examples:
  nbl new "Sales forecast"               # notebooks/sales-forecast.ipynb
  nbl new -d team/research "Churn model" # notebooks/team/research/churn-model.ipynb
  nbl new --no-edit "Scratch"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc // Dereference the pointer to get the service instance

			title := strings.Join(args, " ")
			item, err := s.CreateNotebook(strings.Trim(dir, "/"), title)
			if err != nil {
				return err
			}

			newUlog.Success("Notebook created").
				Field("item", item).
				Field("title", title).
				Pretty(fmt.Sprintf("Created: %s", item)).
				PrettyOnly().
				Emit()

			if noEdit {
				return nil
			}
			editor := s.EditorCommand(item)
			editor.Stdin = os.Stdin
			editor.Stdout = os.Stdout
			editor.Stderr = os.Stderr
			if err := editor.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory inside the notebooks directory, slash-delimited")
	_ = cmd.RegisterFlagCompletionFunc("dir", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s := *svc
		if s == nil {
			return nil, cobra.ShellCompDirectiveError
		}
		items, err := s.ListNotebooks()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return branchKeys(pathtree.Build(items)), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Don't open editor after creating")

	return cmd
}

// branchKeys lists the slash-joined key of every branch in t.
func branchKeys(t *pathtree.Tree) []string {
	var keys []string
	_ = t.Walk(func(ancestors []string, name string, node pathtree.Node) error {
		if _, ok := node.(pathtree.Branch); ok {
			keys = append(keys, pathtree.Join(append(append([]string{}, ancestors...), name)))
		}
		return nil
	})
	return keys
}
