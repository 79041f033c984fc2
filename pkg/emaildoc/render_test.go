package emaildoc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compactconnect/notify/pkg/emaildoc"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		html, err := emaildoc.Render(emaildoc.NewDocument())
		require.NoError(t, err)
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "background-color:#E7EDF3")
	})

	t.Run("renders each block kind", func(t *testing.T) {
		t.Parallel()

		doc := emaildoc.NewDocument()
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.HeadingData{Text: "Data Errors", Level: "h1"},
		}))
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.TextData{Text: "line one\nline two"},
		}))
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.DividerData{LineColor: "#CCCCCC"},
		}))
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.ImageData{URL: "https://example.com/logo.png", Alt: "logo", Width: 200},
		}))

		html, err := emaildoc.Render(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "<h1 ")
		assert.Contains(t, html, "Data Errors")
		assert.Contains(t, html, "line one<br/>line two")
		assert.Contains(t, html, "border-top:1px solid #CCCCCC")
		assert.Contains(t, html, `src="https://example.com/logo.png"`)
	})

	t.Run("columns render side by side", func(t *testing.T) {
		t.Parallel()

		doc := emaildoc.NewDocument()
		leftID, rightID := emaildoc.NewBlockID(), emaildoc.NewBlockID()
		require.NoError(t, doc.AppendFragment(emaildoc.RootBlockID, emaildoc.Fragment{
			RootID: "cols",
			Blocks: []emaildoc.Block{
				{ID: leftID, Data: emaildoc.TextData{Text: "left"}},
				{ID: rightID, Data: emaildoc.TextData{Text: "right"}},
				{ID: "cols", Data: emaildoc.ColumnsData{
					ColumnsCount: 2,
					ColumnsGap:   16,
					Columns: []emaildoc.Column{
						{ChildrenIDs: []string{leftID}},
						{ChildrenIDs: []string{rightID}},
					},
				}},
			},
		}))

		html, err := emaildoc.Render(doc)
		require.NoError(t, err)
		assert.Less(t, strings.Index(html, "left"), strings.Index(html, "right"))
		assert.Contains(t, html, "padding-left:16px")
		assert.Equal(t, 2, strings.Count(html, "<td "))
	})

	t.Run("escapes content", func(t *testing.T) {
		t.Parallel()

		doc := emaildoc.NewDocument()
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.TextData{Text: `<script>alert("x")</script>`},
		}))

		html, err := emaildoc.Render(doc)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("markdown bold spans", func(t *testing.T) {
		t.Parallel()

		doc := emaildoc.NewDocument()
		require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
			ID:   emaildoc.NewBlockID(),
			Data: emaildoc.TextData{Text: "**PRACTITIONER INFO**", Markdown: true},
		}))

		html, err := emaildoc.Render(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>PRACTITIONER INFO</strong>")
	})

	t.Run("dangling reference fails", func(t *testing.T) {
		t.Parallel()

		doc := emaildoc.NewDocument()
		require.NoError(t, doc.AppendFragment(emaildoc.RootBlockID, emaildoc.Fragment{
			RootID: "cols",
			Blocks: []emaildoc.Block{{ID: "cols", Data: emaildoc.ColumnsData{
				ColumnsCount: 1,
				Columns:      []emaildoc.Column{{ChildrenIDs: []string{"gone"}}},
			}}},
		}))

		_, err := emaildoc.Render(doc)
		require.ErrorIs(t, err, emaildoc.ErrUnknownBlock)
	})

	t.Run("deterministic for identical content", func(t *testing.T) {
		t.Parallel()

		build := func() string {
			doc := emaildoc.NewDocument()
			require.NoError(t, doc.AppendChild(emaildoc.RootBlockID, emaildoc.Block{
				ID:   emaildoc.NewBlockID(),
				Data: emaildoc.HeadingData{Text: "same", Level: "h2"},
			}))
			html, err := emaildoc.Render(doc)
			require.NoError(t, err)
			return html
		}
		assert.Equal(t, build(), build())
	})
}
