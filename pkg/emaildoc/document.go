package emaildoc

import (
	"fmt"
	"slices"
)

// Document is one renderable email body: a flat id→Block map with a reserved
// Layout root whose child list enumerates all top-level sections in display
// order. Containers hold block-id references rather than nested blocks, so
// subtrees are spliced in by appending ids to a parent's child list without
// re-walking or copying anything.
//
// A Document is built fresh for every report and discarded after rendering.
// It is not safe for concurrent mutation; it never needs to be, since each
// build is a single synchronous pass.
type Document struct {
	blocks map[string]Block
}

// NewDocument returns a document containing only the root Layout block with
// an empty child list and the default report chrome colors.
func NewDocument() *Document {
	return &Document{
		blocks: map[string]Block{
			RootBlockID: {
				ID: RootBlockID,
				Data: LayoutData{
					BackdropColor: "#E7EDF3",
					CanvasColor:   "#FFFFFF",
					TextColor:     "#242424",
					FontFamily:    "MODERN_SANS",
					ChildrenIDs:   []string{},
				},
			},
		},
	}
}

// Fragment is a self-contained subtree produced by a block builder: the id of
// its top block plus every block reachable from it. The caller splices it
// into a document with AppendFragment.
type Fragment struct {
	RootID string
	Blocks []Block
}

// Block returns the block stored under id.
func (d *Document) Block(id string) (Block, bool) {
	b, ok := d.blocks[id]
	return b, ok
}

// Len returns the number of blocks in the document, root included.
func (d *Document) Len() int { return len(d.blocks) }

// IDs returns every block id in the document, in no particular order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.blocks))
	for id := range d.blocks {
		ids = append(ids, id)
	}
	return ids
}

// AppendChild inserts block under its own id and appends that id to the child
// list of the Layout block parentID. It fails with ErrUnknownParent when the
// parent is absent and ErrNotContainer when the parent cannot hold children.
func (d *Document) AppendChild(parentID string, block Block) error {
	if err := d.insert(block); err != nil {
		return err
	}
	return d.appendRef(parentID, block.ID)
}

// AppendFragment inserts every block of the fragment and appends the
// fragment's root id to the child list of parentID.
func (d *Document) AppendFragment(parentID string, f Fragment) error {
	for _, b := range f.Blocks {
		if err := d.insert(b); err != nil {
			return err
		}
	}
	return d.appendRef(parentID, f.RootID)
}

func (d *Document) insert(b Block) error {
	if b.ID == "" || b.Data == nil {
		return fmt.Errorf("%w: block must carry an id and data", ErrInvalidDocument)
	}
	if _, exists := d.blocks[b.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateBlock, b.ID)
	}
	d.blocks[b.ID] = b
	return nil
}

func (d *Document) appendRef(parentID, childID string) error {
	parent, ok := d.blocks[parentID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParent, parentID)
	}
	layout, ok := parent.Data.(LayoutData)
	if !ok {
		return fmt.Errorf("%w: %q is %s", ErrNotContainer, parentID, parent.Type())
	}
	layout.ChildrenIDs = append(layout.ChildrenIDs, childID)
	parent.Data = layout
	d.blocks[parentID] = parent
	return nil
}

// Validate checks the document's structural invariants: the root exists and
// is a Layout, every referenced child id resolves to a stored block, and
// every ColumnsContainer declares as many columns as it holds.
func (d *Document) Validate() error {
	root, ok := d.blocks[RootBlockID]
	if !ok {
		return fmt.Errorf("%w: missing root block", ErrInvalidDocument)
	}
	if root.Type() != TypeLayout {
		return fmt.Errorf("%w: root block is %s, want %s", ErrInvalidDocument, root.Type(), TypeLayout)
	}
	for id, b := range d.blocks {
		for _, ref := range childRefs(b) {
			if _, ok := d.blocks[ref]; !ok {
				return fmt.Errorf("%w: block %q references missing child %q", ErrInvalidDocument, id, ref)
			}
		}
		if cols, ok := b.Data.(ColumnsData); ok && cols.ColumnsCount != len(cols.Columns) {
			return fmt.Errorf("%w: block %q declares %d columns but holds %d",
				ErrInvalidDocument, id, cols.ColumnsCount, len(cols.Columns))
		}
	}
	return nil
}

// childRefs returns every block id referenced by b's container data, in
// display order.
func childRefs(b Block) []string {
	switch data := b.Data.(type) {
	case LayoutData:
		return slices.Clone(data.ChildrenIDs)
	case ColumnsData:
		var refs []string
		for _, col := range data.Columns {
			refs = append(refs, col.ChildrenIDs...)
		}
		return refs
	default:
		return nil
	}
}
