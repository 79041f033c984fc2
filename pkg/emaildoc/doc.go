// Package emaildoc models a renderable email body as a flat tree of typed
// content blocks and renders it to static, mail-client-safe HTML.
//
// The package follows an arena+index representation: a Document is a map from
// block id to Block, and container blocks (Layout, ColumnsContainer) hold
// ordered lists of child block ids rather than nested block values. Appending
// a prebuilt subtree is therefore a map insert plus an id append - no subtree
// is ever re-walked or copied, and cyclic references cannot arise from
// ordinary construction.
//
// # Block vocabulary
//
// The vocabulary is closed and small: Layout (root), Image, Heading, Text,
// Divider and ColumnsContainer. Each kind carries its own typed data variant
// (HeadingData, TextData, ...) implementing BlockData, so consumers switch
// exhaustively on the variant instead of probing a loose attribute map.
//
// # Usage
//
// Build a document and splice content under the root:
//
//	doc := emaildoc.NewDocument()
//	err := doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
//	    ID:   emaildoc.NewBlockID(),
//	    Data: emaildoc.HeadingData{Text: "Data Errors", Level: "h1"},
//	})
//
// Render to a self-contained HTML string:
//
//	html, err := emaildoc.Render(doc)
//
// # Invariants
//
// Every id referenced by a child list must exist in the document; AppendChild
// and AppendFragment fail fast with ErrUnknownParent on a missing parent, and
// Render fails with ErrUnknownBlock on a dangling child reference. The root
// id is reserved and always present. Generated ids come from a random source
// (NewBlockID) so documents cloned from a shared base never collide.
//
// Rendering is deterministic: rendered output is a pure function of the
// document's visible content, so identical inputs diff cleanly in review.
package emaildoc
