package panel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-notebook-list/pkg/events"
)

// Source is a dropped file that can be read as text.
type Source interface {
	Name() string
	ReadText(ctx context.Context) (string, error)
}

// FileSource reads a file from disk. Its name is the base name of the path.
type FileSource string

func (f FileSource) Name() string { return filepath.Base(string(f)) }

func (f FileSource) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BytesSource is an in-memory dropped file.
type BytesSource struct {
	FileName string
	Data     []byte
}

func (b BytesSource) Name() string { return b.FileName }

func (b BytesSource) ReadText(ctx context.Context) (string, error) {
	return string(b.Data), ctx.Err()
}

// DropResult is the outcome of reading one dropped source.
type DropResult struct {
	Name    string
	Content string
	Err     error
}

// DragEnter marks the panel as a drop target.
func (c *Controller) DragEnter() {
	c.highlighted = true
}

// DragLeave clears the drop highlight.
func (c *Controller) DragLeave() {
	c.highlighted = false
}

// Highlighted reports whether a drag is hovering over the panel.
func (c *Controller) Highlighted() bool {
	return c.highlighted
}

// ReadDropped reads every source concurrently. Results are in source order
// and each carries its own read error; one failed source does not stop the
// others. It touches no panel state and may run off the panel's goroutine.
func (c *Controller) ReadDropped(ctx context.Context, sources ...Source) []DropResult {
	results := make([]DropResult, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			content, err := src.ReadText(ctx)
			results[i] = DropResult{Name: src.Name(), Content: content, Err: err}
			if err != nil {
				return fmt.Errorf("read %s: %w", src.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.WithError(err).WithField("files", len(sources)).Debug("dropped files read with failures")
	}
	return results
}

// DeliverDropped emits one ImportNotebook per successfully read file and
// clears the drop highlight. Failed reads are logged and returned.
func (c *Controller) DeliverDropped(results []DropResult) error {
	c.highlighted = false

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			c.logger.WithError(r.Err).WithField("file", r.Name).Warn("could not read dropped file")
			errs = append(errs, fmt.Errorf("read %s: %w", r.Name, r.Err))
			continue
		}
		c.emit(events.ImportNotebook{Name: r.Name, Content: r.Content, Dropped: true})
	}
	return errors.Join(errs...)
}

// Drop reads the dropped sources and emits their import notifications.
func (c *Controller) Drop(ctx context.Context, sources ...Source) error {
	return c.DeliverDropped(c.ReadDropped(ctx, sources...))
}
