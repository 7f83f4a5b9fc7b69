package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-notebook-list/pkg/notebooks"
	"github.com/mattsolo1/grove-notebook-list/pkg/panel"
	"github.com/mattsolo1/grove-notebook-list/pkg/prefs"
)

// Service ties the notebook directory, the preference store and logging
// together for the commands and the TUI.
type Service struct {
	Config *Config
	Prefs  prefs.Store
	Logger *logrus.Logger
}

// Config holds service configuration
type Config struct {
	NotebooksDir string
	Extensions   []string
	Editor       string
	PrefsBackend string
	PrefsPath    string
}

// New creates the service and opens the preference store.
func New(config *Config, logger *logrus.Logger) (*Service, error) {
	if config.NotebooksDir == "" {
		return nil, fmt.Errorf("notebooks directory is not configured")
	}
	if len(config.Extensions) == 0 {
		config.Extensions = notebooks.DefaultExtensions
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
	}

	store, err := prefs.Open(config.PrefsBackend, config.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs store: %w", err)
	}

	return &Service{
		Config: config,
		Prefs:  store,
		Logger: logger,
	}, nil
}

// Close releases the preference store.
func (s *Service) Close() error {
	return s.Prefs.Close()
}

// ListNotebooks returns the item paths of every notebook in the notebooks
// directory. A missing directory yields an empty list.
func (s *Service) ListNotebooks() ([]string, error) {
	if _, err := os.Stat(s.Config.NotebooksDir); os.IsNotExist(err) {
		return nil, nil
	}
	items, err := notebooks.Scan(s.Config.NotebooksDir, s.Config.Extensions)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Config.NotebooksDir, err)
	}
	return items, nil
}

// CreateNotebook writes an empty notebook for title under dir and returns its
// item path.
func (s *Service) CreateNotebook(dir, title string) (string, error) {
	item, err := notebooks.Create(s.Config.NotebooksDir, dir, title)
	if err != nil {
		return "", fmt.Errorf("create notebook: %w", err)
	}
	s.Logger.WithField("item", item).Debug("notebook created")
	return item, nil
}

// ImportNotebook stores dropped or imported content and returns its item path.
func (s *Service) ImportNotebook(name, content string) (string, error) {
	item, err := notebooks.Import(s.Config.NotebooksDir, name, content)
	if err != nil {
		return "", fmt.Errorf("import notebook: %w", err)
	}
	s.Logger.WithField("item", item).Debug("notebook imported")
	return item, nil
}

// NotebookPath resolves an item path to a file path.
func (s *Service) NotebookPath(item string) string {
	return notebooks.Abs(s.Config.NotebooksDir, item)
}

// NewController creates a panel controller backed by the service's prefs.
func (s *Service) NewController() *panel.Controller {
	return panel.New(s.Prefs, panel.WithLogger(s.Logger.WithField("component", "panel")))
}

// Watch starts watching the notebooks directory for new notebooks.
func (s *Service) Watch() (*notebooks.Watcher, error) {
	if err := os.MkdirAll(s.Config.NotebooksDir, 0755); err != nil {
		return nil, fmt.Errorf("create notebooks dir: %w", err)
	}
	return notebooks.NewWatcher(s.Config.NotebooksDir, s.Config.Extensions, s.Logger.WithField("component", "watcher"))
}

// EditorCommand builds the command that opens item in the configured editor.
func (s *Service) EditorCommand(item string) *exec.Cmd {
	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}
	return exec.Command(editor, s.NotebookPath(item))
}

// DefaultPrefsPath returns the preference file location for a backend.
func DefaultPrefsPath(backend string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	name := "prefs.yaml"
	if backend == prefs.BackendSQLite {
		name = "prefs.db"
	}
	return filepath.Join(home, ".grove", "nbl", name)
}
