// Package render is the Event Interpreter (spec.md §4.2): it folds the
// linear mdevent.Event stream into terminal bytes by walking a stack of
// nested block/inline frames, exactly as the teacher's reference renderer
// walks a (state, event) transition table. internal/render never imports a
// Markdown parser; it only ever sees internal/mdevent.
package render

import (
	"fmt"

	"github.com/arinmd/termcat/internal/mdevent"
	"github.com/arinmd/termcat/internal/termctl"
	"github.com/arinmd/termcat/internal/textwrap"
	"github.com/arinmd/termcat/internal/theme"
)

// maxDepth bounds how deeply blocks may nest. Malicious or pathological
// input (thousands of nested blockquotes) would otherwise grow the frame
// stack without limit.
const maxDepth = 100

type frameKind int

const (
	frameTopLevel frameKind = iota
	frameStyledBlock
	frameInline
	frameTableBlock
	frameRenderedImage
)

type inlineKind int

const (
	inlineText inlineKind = iota
	inlineLink
	inlineBlock // headings: writes text unwrapped
	inlineListItem
)

type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

type itemState int

const (
	itemStart itemState = iota // nothing written yet for this item
	itemBlock                  // item holds a nested block (paragraph/list/quote/...)
	itemText                   // item holds plain inline text
)

// frame is one entry in the interpreter's stack. Only the fields relevant
// to its kind are meaningful; this mirrors the teacher's approach of
// keeping one plain struct per rendering concern rather than an interface
// hierarchy (internal/ui/styles.go's Theme is similarly a flat value type).
type frame struct {
	kind frameKind

	// Shared by StyledBlock and Inline; TopLevel uses marginBefore only.
	indent       int
	style        theme.Style
	marginBefore bool

	// Inline-only.
	inline    inlineKind
	listK     listKind
	orderNo   int
	itemState itemState
}

// pendingLink is a link/image whose destination could not be rendered as a
// clickable hyperlink and is instead deferred to the reference list.
type pendingLink struct {
	dest  string
	title string
	kind  mdevent.LinkKind
}

// stateData is the mutable data threaded alongside the frame stack
// (spec.md §3 StateData).
type stateData struct {
	currentLine  textwrap.CurrentLine
	pendingRefs  []termctl.LinkReferenceDefinition
	nextRefIndex int
	pendingLinks []pendingLink
	table        tableAccum
}

func newStateData() stateData {
	return stateData{nextRefIndex: 1}
}

func (d *stateData) pushPendingLink(dest, title string, kind mdevent.LinkKind) {
	d.pendingLinks = append(d.pendingLinks, pendingLink{dest: dest, title: title, kind: kind})
}

func (d *stateData) popPendingLink() pendingLink {
	n := len(d.pendingLinks)
	l := d.pendingLinks[n-1]
	d.pendingLinks = d.pendingLinks[:n-1]
	return l
}

// addLinkReference allocates the next reference number for dest/title and
// queues it for the next reference-list flush.
func (d *stateData) addLinkReference(dest, title string) int {
	index := d.nextRefIndex
	d.nextRefIndex++
	d.pendingRefs = append(d.pendingRefs, termctl.LinkReferenceDefinition{Index: index, URL: dest, Title: title})
	return index
}

func (d *stateData) takeRefs() []termctl.LinkReferenceDefinition {
	refs := d.pendingRefs
	d.pendingRefs = nil
	return refs
}

// interpreter holds the frame stack plus everything the transitions need
// to write bytes: the Output Emitter, settings/environment, and the image
// fetcher used to resolve inline images.
type interpreter struct {
	w    *writer
	data stateData
	stack []frame
}

func newInterpreter(w *writer) *interpreter {
	return &interpreter{
		w:    w,
		data: newStateData(),
		stack: []frame{{kind: frameTopLevel}},
	}
}

func (it *interpreter) top() *frame {
	return &it.stack[len(it.stack)-1]
}

// replace swaps the top frame in place (State::current in the reference
// renderer: the current frame changes but the stack beneath is untouched).
func (it *interpreter) replace(f frame) {
	it.stack[len(it.stack)-1] = f
}

// descend pushes a brand new frame on top of the stack, keeping the
// current one beneath it for when the new frame pops. Nesting beyond
// maxDepth panics.
func (it *interpreter) descend(f frame) error {
	if len(it.stack) >= maxDepth {
		panic(fmt.Sprintf("render: nesting exceeds %d levels", maxDepth))
	}
	it.stack = append(it.stack, f)
	return nil
}

func (it *interpreter) pop() {
	it.stack = it.stack[:len(it.stack)-1]
}

// enterBlock implements the block-start margin pattern shared by every
// top-level and StyledBlock-nested block start: write a blank line if the
// enclosing frame already asked for one, then mark the enclosing frame so
// the next sibling gets a blank line of its own, then descend into next.
func (it *interpreter) enterBlock(next frame) error {
	outer := it.top()
	if outer.marginBefore {
		if err := it.w.writeRaw("\n"); err != nil {
			return err
		}
	}
	outer.marginBefore = true
	return it.descend(next)
}
