package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-notebook-list/pkg/prefs"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var prefsUlog = grovelogging.NewUnifiedLogger("grove-notebook-list.cmd.prefs")

func NewPrefsCmd(svc **service.Service) *cobra.Command {
	var prefsJSON bool

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the panel preferences",
		Long: `Show the stored notebook list preferences.

Subcommands flip the collapsed state the way the panel's collapse control
does, or forget everything that was stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			p, _, err := s.Prefs.Get(prefs.PanelKey)
			if err != nil {
				return err
			}

			var out []byte
			if prefsJSON {
				out, err = json.MarshalIndent(p, "", "  ")
			} else {
				out, err = yaml.Marshal(map[string]prefs.Prefs{prefs.PanelKey: p})
			}
			if err != nil {
				return fmt.Errorf("marshal prefs: %w", err)
			}

			prefsUlog.Info("Panel prefs").
				Field("collapsed", p.Collapsed).
				Field("expanded", len(p.Expanded)).
				Pretty(strings.TrimSuffix(string(out), "\n")).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}
	cmd.Flags().BoolVar(&prefsJSON, "json", false, "Output preferences as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip the collapsed preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ctrl := s.NewController()
			if err := ctrl.Collapse(false); err != nil {
				return err
			}

			state := "expanded"
			if ctrl.Collapsed() {
				state = "collapsed"
			}
			prefsUlog.Success("Panel toggled").
				Field("collapsed", ctrl.Collapsed()).
				Pretty(fmt.Sprintf("Notebook list is now %s", state)).
				PrettyOnly().
				Emit()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Prefs.Set(prefs.PanelKey, prefs.Prefs{}); err != nil {
				return err
			}
			prefsUlog.Success("Panel prefs reset").
				Pretty("Preferences reset").
				PrettyOnly().
				Emit()
			return nil
		},
	})

	return cmd
}
