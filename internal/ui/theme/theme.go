// Package theme holds the color palettes update prompts are drawn with.
package theme

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the palette active until Set picks another.
const DefaultName = "default"

// Palette is the semantic color set for prompts. Every color adapts to
// light and dark terminals.
type Palette struct {
	Primary   lipgloss.AdaptiveColor // dialog border, key pills, spinner
	Secondary lipgloss.AdaptiveColor // links
	Accent    lipgloss.AdaptiveColor // titles
	Error     lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor // update available
	Success   lipgloss.AdaptiveColor // banner border, up to date
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor // hints, status line
	Border    lipgloss.AdaptiveColor // up-to-date banner
}

var registry = struct {
	mu       sync.RWMutex
	palettes map[string]Palette
	current  string
}{
	palettes: map[string]Palette{},
	current:  DefaultName,
}

// Register adds or replaces a named palette.
func Register(name string, p Palette) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.palettes[name] = p
}

// Set makes the named palette current. It reports false, leaving the
// current palette alone, when name is unknown.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.palettes[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active palette.
func Current() Palette {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.palettes[registry.current]
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// Lookup returns the named palette.
func Lookup(name string) (Palette, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	p, ok := registry.palettes[name]
	return p, ok
}

// Names lists the registered palettes in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.palettes))
	for name := range registry.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
