// ABOUTME: Single-line prompt editor: blocking key loop, echo modes, history recall,
// ABOUTME: shortcut literals, rejection flash, and commit against the validation pipeline.

package prompt

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/conterm/conterm/pkg/console"
	"github.com/conterm/conterm/pkg/console/key"
	"github.com/conterm/conterm/pkg/console/surface"
	"github.com/conterm/conterm/pkg/console/terminal"
	"github.com/conterm/conterm/pkg/console/text"
)

const (
	// flashDelay is how long a rejected buffer stays highlighted;
	// flashes are rate-limited to one per 2*flashDelay.
	flashDelay = 150 * time.Millisecond

	// drainBatch caps how many keys one loop iteration consumes.
	drainBatch = 64

	defaultMaxLen = 254
)

// Prompter runs one single-line input interaction per Execute call.
// Construct with one of the New* builders, adjust with the Set*
// methods, then call Execute and inspect the returned Status.
type Prompter struct {
	ctx  *console.Context
	surf *surface.Surface // optional, set by AttachSurface

	style         Style
	prefix        string
	minLen        int
	maxLen        int
	legalChars    string
	caseSensitive bool
	filter        string
	denySpaces    bool
	yesLiteral    string
	noLiteral     string
	kind          Kind
	enumNames     []string
	echoKey       bool // AnyKey: echo the key that was read

	status    Status
	input     string
	buf       []rune
	inputCol  int
	recall    *console.Recall
	lastFlash time.Time
}

// newPrompter is the shared builder base.
func newPrompter(ctx *console.Context, style Style) *Prompter {
	return &Prompter{
		ctx:    ctx,
		style:  style,
		prefix: "> ",
		maxLen: defaultMaxLen,
		status: StatusWaiting,
	}
}

// NewText creates a plain visible text prompt.
func NewText(ctx *console.Context) *Prompter {
	return newPrompter(ctx, StyleText)
}

// NewPassword creates a prompt that echoes '*' per character.
func NewPassword(ctx *console.Context) *Prompter {
	return newPrompter(ctx, StylePassword)
}

// NewSecret creates a prompt that echoes nothing.
func NewSecret(ctx *console.Context) *Prompter {
	return newPrompter(ctx, StyleSecret)
}

// NewFilename creates a prompt rejecting path separators and
// filename-illegal characters.
func NewFilename(ctx *console.Context) *Prompter {
	return newPrompter(ctx, StyleFilename)
}

// NewPath creates a prompt rejecting the narrower path-illegal set.
func NewPath(ctx *console.Context) *Prompter {
	return newPrompter(ctx, StylePath)
}

// NewConfirm creates a yes/no prompt accepting only the two literals.
func NewConfirm(ctx *console.Context, yes, no string) *Prompter {
	p := newPrompter(ctx, StyleConfirm)
	p.yesLiteral = yes
	p.noLiteral = no
	p.prefix = "{yes}/{no}? "
	return p
}

// NewAnyKey creates a single-key prompt. When echo is false the prompt
// prefix is erased after the key is read.
func NewAnyKey(ctx *console.Context, echo bool) *Prompter {
	p := newPrompter(ctx, StyleAnyKey)
	p.echoKey = echo
	p.prefix = "Press any key"
	return p
}

// SetPrefix sets the prompt prefix. The placeholders {min}, {max},
// {yes}, {no}, and {type} are substituted when the prompt runs.
func (p *Prompter) SetPrefix(prefix string) { p.prefix = prefix }

// SetLengthBounds sets the inclusive committed-length bounds.
func (p *Prompter) SetLengthBounds(minLen, maxLen int) {
	p.minLen = minLen
	p.maxLen = maxLen
}

// SetLegalChars sets the explicit allow-list and its case sensitivity.
func (p *Prompter) SetLegalChars(chars string, caseSensitive bool) {
	p.legalChars = chars
	p.caseSensitive = caseSensitive
}

// SetFilter sets the anchored wildcard filter committed input must match.
func (p *Prompter) SetFilter(pattern string) { p.filter = pattern }

// AttachSurface ties the prompter to the surface it interleaves with;
// pagination on that surface is suppressed while a prompt owns the
// cursor, so prompt output never triggers a scroll-break pause.
func (p *Prompter) AttachSurface(s *surface.Surface) { p.surf = s }

// DenySpaces rejects input containing spaces at commit.
func (p *Prompter) DenySpaces() { p.denySpaces = true }

// SetKind requires committed input to convert to the given kind.
// Enum names are consulted for KindEnum.
func (p *Prompter) SetKind(kind Kind, enums ...string) {
	p.kind = kind
	p.enumNames = enums
}

// InputString returns the committed input of the last Execute call.
func (p *Prompter) InputString() string { return p.input }

// Status returns the outcome of the last Execute call.
func (p *Prompter) Status() Status { return p.status }

// TryResult converts the committed input to the given kind.
func (p *Prompter) TryResult(kind Kind) (any, bool) {
	if p.status != StatusEntered && p.status != StatusYes && p.status != StatusNo {
		return nil, false
	}
	return Convert(p.input, kind, p.enumNames)
}

// reset prepares for a fresh Execute and fails fast on caller bugs:
// inverted length bounds or colliding confirm literals are programmer
// errors, not runtime conditions.
func (p *Prompter) reset() {
	if p.maxLen <= 0 {
		p.maxLen = defaultMaxLen
	}
	if p.minLen > p.maxLen {
		panic("prompt: minimum length " + strconv.Itoa(p.minLen) +
			" exceeds maximum " + strconv.Itoa(p.maxLen))
	}
	if p.style == StyleConfirm && strings.EqualFold(p.yesLiteral, p.noLiteral) {
		panic("prompt: yes and no literals are indistinguishable")
	}
	p.status = StatusWaiting
	p.input = ""
	p.buf = nil
}

// Execute runs the prompt until the user commits or escapes. An
// optional seed pre-fills the buffer for non-secret styles.
func (p *Prompter) Execute(seed ...string) Status {
	p.reset()
	ctx := context.Background()

	if p.style == StyleAnyKey {
		return p.executeAnyKey(ctx)
	}

	// The prompt owns the cursor: pagination on the surface it
	// interleaves with is suppressed, cursor shown only when the
	// style echoes.
	if p.surf != nil {
		p.surf.SetScrollSuppressed(true)
		defer p.surf.SetScrollSuppressed(false)
	}
	_ = p.ctx.Term.ShowCursor(p.style.echoes())
	defer func() { _ = p.ctx.Term.ShowCursor(p.ctx.Settings.CursorVisible) }()

	prefix := p.expandPrefix()
	_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Prompt.Apply(prefix))
	p.inputCol = text.VisibleWidth(prefix)

	// Masked styles take a seed too; only non-echoing ones refuse it,
	// since an invisible prefill cannot be reviewed before committing.
	if len(seed) > 0 && seed[0] != "" && p.style.echoes() {
		p.buf = []rune(seed[0])
		if len(p.buf) > p.maxLen {
			p.buf = p.buf[:p.maxLen]
		}
		p.repaint(0)
	}

	p.recall = p.ctx.History.StartRecall()

	for p.status == StatusWaiting {
		batch := p.ctx.Keys.Drain(ctx, drainBatch)
		if len(batch) == 0 {
			p.status = StatusEscaped
			break
		}
		for _, k := range batch {
			p.handleKey(k)
			if p.status != StatusWaiting {
				break
			}
		}
	}

	_ = terminal.WriteString(p.ctx.Term, "\r\n")
	return p.status
}

// executeAnyKey reads exactly one key and returns its literal character
// or symbolic name.
func (p *Prompter) executeAnyKey(ctx context.Context) Status {
	prefix := p.expandPrefix()
	_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Prompt.Apply(prefix))

	k, ok := p.ctx.Keys.Read(ctx)
	if !ok || k.Type == key.KeyEscape {
		p.status = StatusEscaped
		_ = terminal.WriteString(p.ctx.Term, "\r\n")
		return p.status
	}

	p.input = k.String()
	p.status = StatusEntered
	if p.echoKey {
		_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Input.Apply(p.input)+"\r\n")
	} else {
		// Leave no trace of the interaction.
		_ = p.ctx.Term.SetCursorCol(0)
		_ = terminal.WriteString(p.ctx.Term, strings.Repeat(" ", text.VisibleWidth(prefix)))
		_ = p.ctx.Term.SetCursorCol(0)
	}
	return p.status
}

// handleKey applies one key event to the edit buffer.
func (p *Prompter) handleKey(k key.Key) {
	switch k.Type {
	case key.KeyEscape:
		p.status = StatusEscaped
		p.input = ""

	case key.KeyEnter:
		s, st, ok := p.tryCommit()
		if !ok {
			p.flash()
			return
		}
		p.input = s
		p.status = st
		if p.style.historyEligible() {
			p.ctx.History.Add(s)
		}

	case key.KeyBackspace:
		if len(p.buf) > 0 {
			old := p.displayWidth()
			p.buf = p.buf[:len(p.buf)-1]
			p.repaint(old)
		}

	case key.KeyDelete:
		if len(p.buf) > 0 {
			old := p.displayWidth()
			p.buf = nil
			p.repaint(old)
		}

	case key.KeyUp:
		if p.style.historyEligible() {
			p.replaceWith(p.recall.Back())
		}

	case key.KeyDown:
		if p.style.historyEligible() {
			p.replaceWith(p.recall.Forward())
		}

	case key.KeyCtrlR:
		if p.style.historyEligible() {
			p.replaceWith(p.ctx.History.Search(string(p.buf)))
		}

	case key.KeyHome, key.KeyEnd, key.KeyInsert, key.KeyPageUp, key.KeyPageDown:
		p.insertShortcut(k)

	case key.KeySpace:
		p.insertRune(' ')

	case key.KeyRune:
		if !k.Alt && !k.Ctrl {
			p.insertRune(k.Rune)
		}
	}
}

// insertRune appends a printable character if the buffer has room.
func (p *Prompter) insertRune(r rune) {
	if len(p.buf) >= p.maxLen {
		return
	}
	p.buf = append(p.buf, r)
	switch {
	case p.style.masked():
		_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Input.Apply("*"))
	case p.style.echoes():
		_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Input.Apply(string(r)))
	}
}

// insertShortcut inserts a navigation key's symbolic name as a literal
// token: plain-text style only, empty buffer only, and only when the
// name fits the length budget.
func (p *Prompter) insertShortcut(k key.Key) {
	if p.style != StyleText || len(p.buf) != 0 {
		return
	}
	name := k.String()
	if len(name) > p.maxLen {
		return
	}
	for _, r := range name {
		p.insertRune(r)
	}
}

// replaceWith swaps the buffer for a history entry, truncating to the
// length budget and repainting.
func (p *Prompter) replaceWith(entry string, ok bool) {
	if !ok {
		return
	}
	old := p.displayWidth()
	p.buf = []rune(entry)
	if len(p.buf) > p.maxLen {
		p.buf = p.buf[:p.maxLen]
	}
	p.repaint(old)
}

// displayWidth is the current on-screen width of the echoed buffer.
func (p *Prompter) displayWidth() int {
	switch {
	case !p.style.echoes():
		return 0
	case p.style.masked():
		return len(p.buf)
	default:
		return text.VisibleWidth(string(p.buf))
	}
}

// echoString is the on-screen representation of the buffer.
func (p *Prompter) echoString() string {
	switch {
	case !p.style.echoes():
		return ""
	case p.style.masked():
		return strings.Repeat("*", len(p.buf))
	default:
		return string(p.buf)
	}
}

// repaint erases the previously echoed buffer (oldWidth columns from
// the input start) and redraws the current one. The same column
// arithmetic as the surface keeps erase and redraw aligned.
func (p *Prompter) repaint(oldWidth int) {
	_ = p.ctx.Term.SetCursorCol(p.inputCol)
	if oldWidth > 0 {
		_ = terminal.WriteString(p.ctx.Term, strings.Repeat(" ", oldWidth))
		_ = p.ctx.Term.SetCursorCol(p.inputCol)
	}
	if e := p.echoString(); e != "" {
		_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Input.Apply(e))
	}
}

// flash briefly highlights the rejected buffer in the critical color.
// Rapid repeated rejections within 2*flashDelay do not flash again.
func (p *Prompter) flash() {
	if time.Since(p.lastFlash) < 2*flashDelay {
		return
	}
	p.lastFlash = time.Now()

	e := p.echoString()
	if e == "" {
		return
	}
	_ = p.ctx.Term.SetCursorCol(p.inputCol)
	_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Critical.Apply(e))
	time.Sleep(flashDelay)
	_ = p.ctx.Term.SetCursorCol(p.inputCol)
	_ = terminal.WriteString(p.ctx.Term, p.ctx.Palette.Input.Apply(e))
}

// expandPrefix substitutes the prefix placeholders.
func (p *Prompter) expandPrefix() string {
	r := strings.NewReplacer(
		"{min}", strconv.Itoa(p.minLen),
		"{max}", strconv.Itoa(p.maxLen),
		"{yes}", p.yesLiteral,
		"{no}", p.noLiteral,
		"{type}", kindName(p.kind),
	)
	return r.Replace(p.prefix)
}
