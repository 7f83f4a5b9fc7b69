// Package panel implements the notebook list panel: the rendered tree plus its
// buttons, collapse preference and file drops.
package panel

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	"github.com/mattsolo1/grove-notebook-list/pkg/prefs"
	"github.com/mattsolo1/grove-notebook-list/pkg/render"
)

// Controller owns the renderer and everything around it. Like the renderer it
// is driven from a single goroutine.
type Controller struct {
	renderer   *render.Renderer
	store      prefs.Store
	dispatcher *events.Dispatcher
	logger     *logrus.Entry

	disabled    bool
	collapsed   bool
	highlighted bool
	remembered  []string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for non-fatal problems.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDispatcher shares an existing dispatcher.
func WithDispatcher(d *events.Dispatcher) Option {
	return func(c *Controller) { c.dispatcher = d }
}

// New creates a controller persisting its preferences in store.
func New(store prefs.Store, opts ...Option) *Controller {
	c := &Controller{store: store}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = events.NewDispatcher()
	}
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = logrus.NewEntry(l)
	}
	c.renderer = render.New(c.emit)
	return c
}

func (c *Controller) emit(e events.Event) {
	c.logger.WithField("event", e.Kind().String()).Debug("panel event")
	c.dispatcher.Dispatch(e)
}

// Subscribe registers l for panel notifications.
func (c *Controller) Subscribe(l events.Listener) func() {
	return c.dispatcher.Subscribe(l)
}

// Renderer exposes the render tree for presentation.
func (c *Controller) Renderer() *render.Renderer {
	return c.renderer
}

// Init applies the persisted preferences. It emits a forced toggle when the
// panel was left collapsed, so it must run after the owner has subscribed.
func (c *Controller) Init() error {
	p, ok, err := c.store.Get(prefs.PanelKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	c.remembered = p.Expanded
	c.applyRemembered()
	if p.Collapsed {
		return c.Collapse(true)
	}
	return nil
}

// SetItems replaces the listing with items.
func (c *Controller) SetItems(items []string) {
	c.renderer.SetItems(items)
	c.applyRemembered()
}

// AddItem merges a single path into the listing.
func (c *Controller) AddItem(path string) {
	c.renderer.AddItem(path)
	c.applyRemembered()
}

func (c *Controller) applyRemembered() {
	for _, key := range c.remembered {
		c.renderer.SetExpanded(key, true)
	}
}

// SetDisabled enables or disables the import and new controls.
func (c *Controller) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports whether the controls are disabled.
func (c *Controller) Disabled() bool {
	return c.disabled
}

// Collapsed reports whether the panel is currently collapsed.
func (c *Controller) Collapsed() bool {
	return c.collapsed
}

// RequestImport is the import control. It reports whether an event was sent.
func (c *Controller) RequestImport() bool {
	if c.disabled {
		return false
	}
	c.emit(events.ImportNotebook{})
	return true
}

// RequestNew is the new notebook control. It reports whether an event was
// sent.
func (c *Controller) RequestNew() bool {
	if c.disabled {
		return false
	}
	c.emit(events.NewNotebook{})
	return true
}

// Collapse toggles the panel. With force the panel is collapsed and the
// preference is left alone; otherwise the stored preference is flipped.
func (c *Controller) Collapse(force bool) error {
	if force {
		c.collapsed = true
		c.emit(events.ToggleNotebookListUI{Force: true})
		return nil
	}

	p, _, err := c.store.Get(prefs.PanelKey)
	if err != nil {
		c.logger.WithError(err).Warn("could not read panel prefs")
	}
	c.collapsed = !p.Collapsed
	err = prefs.Update(c.store, prefs.PanelKey, func(p *prefs.Prefs) {
		p.Collapsed = c.collapsed
	})
	c.emit(events.ToggleNotebookListUI{})
	return err
}

// Activate activates the leaf rendered for path. It reports whether the leaf
// exists.
func (c *Controller) Activate(path string) bool {
	leaf, ok := c.renderer.Leaf(path)
	if !ok {
		return false
	}
	leaf.Activate()
	return true
}

// Toggle expands or collapses the branch with the given key and remembers the
// expanded set. Unknown keys are ignored.
func (c *Controller) Toggle(key string) error {
	if !c.renderer.Toggle(key) {
		return nil
	}
	return c.rememberExpanded()
}

// ExpandAll expands every branch and remembers it.
func (c *Controller) ExpandAll() error {
	c.renderer.ExpandAll()
	return c.rememberExpanded()
}

// CollapseAll collapses every branch and remembers it.
func (c *Controller) CollapseAll() error {
	c.renderer.CollapseAll()
	return c.rememberExpanded()
}

func (c *Controller) rememberExpanded() error {
	c.remembered = c.renderer.ExpandedKeys()
	return prefs.Update(c.store, prefs.PanelKey, func(p *prefs.Prefs) {
		p.Expanded = c.remembered
	})
}
