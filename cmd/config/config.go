package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-notebook-list/pkg/notebooks"
	"github.com/mattsolo1/grove-notebook-list/pkg/prefs"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var logLevel string

// InitConfig reads ~/.config/nbl/config.yaml, or the file named by NBL_CONFIG.
func InitConfig() {
	if cfgFile := os.Getenv("NBL_CONFIG"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "nbl")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("NBL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("notebooks_dir", DefaultNotebooksDir())
	viper.SetDefault("extensions", notebooks.DefaultExtensions)
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("prefs.backend", prefs.BackendFile)
	viper.SetDefault("prefs.path", "")

	// A missing config file is normal.
	_ = viper.ReadInConfig()
}

// DefaultNotebooksDir reads nbl.notebooks_dir from grove.yml, falling back to
// ~/Documents/notebooks.
func DefaultNotebooksDir() string {
	home, _ := os.UserHomeDir()
	fallback := filepath.Join(home, "Documents", "notebooks")

	cfg, err := coreconfig.LoadDefault()
	if err != nil {
		return fallback
	}
	if data, ok := cfg.Extensions["nbl"]; ok {
		if m, ok := data.(map[string]interface{}); ok {
			if dir, ok := m["notebooks_dir"].(string); ok && dir != "" {
				return ExpandHome(dir)
			}
		}
	}
	return fallback
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ServiceConfig assembles the service configuration from viper.
func ServiceConfig() *service.Config {
	backend := viper.GetString("prefs.backend")
	prefsPath := viper.GetString("prefs.path")
	if prefsPath == "" && backend != prefs.BackendMemory {
		prefsPath = service.DefaultPrefsPath(backend)
	}

	return &service.Config{
		NotebooksDir: ExpandHome(viper.GetString("notebooks_dir")),
		Extensions:   viper.GetStringSlice("extensions"),
		Editor:       viper.GetString("editor"),
		PrefsBackend: backend,
		PrefsPath:    ExpandHome(prefsPath),
	}
}

func InitService() (*service.Service, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	return service.New(ServiceConfig(), logger)
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	cmd.PersistentFlags().String("notebooks-dir", "", "notebooks directory (overrides config)")
	cobra.CheckErr(viper.BindPFlag("notebooks_dir", cmd.PersistentFlags().Lookup("notebooks-dir")))
}
