package panel

import (
	"net/url"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"

	panelctl "github.com/mattsolo1/grove-notebook-list/pkg/panel"
)

// splitPastedPaths splits text the way terminals paste dropped files: paths
// separated by whitespace, with spaces either backslash-escaped or inside
// quotes. file:// URLs are turned into paths. Text that does not parse as a
// plain list of words (unbalanced quotes, pipes, redirects) yields nothing.
func splitPastedPaths(text string) []string {
	parser := shellwords.NewParser()
	words, err := parser.Parse(text)
	if err != nil || parser.Position != -1 || len(words) == 0 {
		return nil
	}
	paths := make([]string, len(words))
	for i, w := range words {
		paths[i] = fromFileURL(w)
	}
	return paths
}

func fromFileURL(p string) string {
	if !strings.HasPrefix(p, "file://") {
		return p
	}
	u, err := url.Parse(p)
	if err != nil || u.Path == "" {
		return p
	}
	return u.Path
}

// droppedSources turns pasted text into drop sources. Text that is not a
// list of existing regular files yields nothing, so an ordinary paste is not
// mistaken for a drop.
func droppedSources(text string) []panelctl.Source {
	paths := splitPastedPaths(text)
	if len(paths) == 0 {
		return nil
	}
	sources := make([]panelctl.Source, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		sources = append(sources, panelctl.FileSource(p))
	}
	return sources
}
