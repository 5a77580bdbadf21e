// ABOUTME: Context bundles the terminal, settings, palette, and shared history.
// ABOUTME: Constructed once per process and injected into surfaces and prompts.

package console

import (
	"github.com/conterm/conterm/pkg/console/key"
	"github.com/conterm/conterm/pkg/console/terminal"
	"github.com/conterm/conterm/pkg/console/theme"
)

// Context is the owned state every surface and prompt operates against:
// the terminal device, the key source, mutable settings, the active
// palette, and the process-wide prompt history. There is no hidden
// global state; sharing happens by handing the same Context around.
type Context struct {
	Term     terminal.Terminal
	Keys     *key.Queue
	Settings *Settings
	Palette  theme.Palette
	History  *History
}

// NewContext creates a Context with default settings, the stock
// palette, and an empty history.
func NewContext(t terminal.Terminal, keys *key.Queue) *Context {
	return &Context{
		Term:     t,
		Keys:     keys,
		Settings: DefaultSettings(),
		Palette:  theme.DefaultPalette(),
		History:  NewHistory(),
	}
}
