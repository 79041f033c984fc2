package emaildoc

import "github.com/google/uuid"

// BlockType identifies one of the closed vocabulary of block kinds.
type BlockType string

const (
	TypeLayout           BlockType = "Layout"
	TypeImage            BlockType = "Image"
	TypeHeading          BlockType = "Heading"
	TypeText             BlockType = "Text"
	TypeDivider          BlockType = "Divider"
	TypeColumnsContainer BlockType = "ColumnsContainer"
)

// RootBlockID is the reserved id of the document root. It is always present
// and always of type Layout.
const RootBlockID = "root"

// Padding describes the four-sided inner spacing of a block, in pixels.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Style carries the inline presentation attributes shared by leaf blocks.
// Zero values mean "unset" and are omitted from rendered output.
type Style struct {
	Padding         *Padding
	Color           string
	BackgroundColor string
	FontSize        int
	FontWeight      string
	TextAlign       string
}

// BlockData is the tagged-variant payload of a block. Each block kind has its
// own concrete type so that the renderer can switch exhaustively instead of
// probing an open attribute map.
type BlockData interface {
	BlockType() BlockType
}

// LayoutData is the root container: document-wide colors and font plus the
// ordered list of top-level child block ids.
type LayoutData struct {
	BackdropColor string
	CanvasColor   string
	TextColor     string
	FontFamily    string
	ChildrenIDs   []string
}

func (LayoutData) BlockType() BlockType { return TypeLayout }

// ImageData renders a remote image referenced by URL.
type ImageData struct {
	Style  Style
	URL    string
	Alt    string
	Width  int
	Height int
}

func (ImageData) BlockType() BlockType { return TypeImage }

// HeadingData renders an h1/h2/h3 element.
type HeadingData struct {
	Style Style
	Text  string
	Level string
}

func (HeadingData) BlockType() BlockType { return TypeHeading }

// TextData renders a paragraph. When Markdown is set the text is treated as a
// small markdown subset (line breaks and **bold** spans); otherwise it is
// emitted as escaped plain text with line breaks preserved.
type TextData struct {
	Style    Style
	Text     string
	Markdown bool
}

func (TextData) BlockType() BlockType { return TypeText }

// DividerData renders a horizontal rule.
type DividerData struct {
	Style      Style
	LineColor  string
	LineHeight int
}

func (DividerData) BlockType() BlockType { return TypeDivider }

// Column holds the ordered child ids of one column of a ColumnsContainer.
type Column struct {
	ChildrenIDs []string
}

// ColumnsData renders a fixed-count multi-column row. ColumnsCount must equal
// len(Columns); a column's ChildrenIDs may be empty (kept for visual
// symmetry).
type ColumnsData struct {
	Style        Style
	ColumnsCount int
	ColumnsGap   int
	Columns      []Column
}

func (ColumnsData) BlockType() BlockType { return TypeColumnsContainer }

// Block is one node of the document tree.
type Block struct {
	ID   string
	Data BlockData
}

// Type returns the block's kind, derived from its data variant.
func (b Block) Type() BlockType {
	if b.Data == nil {
		return ""
	}
	return b.Data.BlockType()
}

// NewBlockID returns a fresh, collision-resistant block id. Ids are random
// rather than sequential so that documents cloned from a shared base template
// never collide; they are structural identifiers, not secrets.
func NewBlockID() string {
	return "block-" + uuid.NewString()
}
