package emaildoc

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// fontStacks maps the small set of font family tokens used by Layout blocks
// to email-safe CSS stacks.
var fontStacks = map[string]string{
	"MODERN_SANS":    `'Helvetica Neue', Helvetica, Arial, sans-serif`,
	"BOOK_SANS":      `Optima, Candara, 'Noto Sans', sans-serif`,
	"MONOSPACE":      `'Courier New', Courier, monospace`,
	"ORGANIC_SERIF":  `Georgia, 'Times New Roman', serif`,
	"GEOMETRIC_SANS": `Futura, 'Trebuchet MS', Arial, sans-serif`,
}

var boldSpan = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)

// Render converts a finished document into a self-contained static HTML
// string. All styling is inline; the output references no external
// stylesheets or scripts, so it displays identically in any mail client.
//
// Rendering is deterministic: identical documents (up to block ids, which
// never appear in the output) render to identical strings. A childrenIds
// entry that does not resolve to a stored block fails with ErrUnknownBlock.
func Render(doc *Document) (string, error) {
	root, ok := doc.Block(RootBlockID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlock, RootBlockID)
	}
	layout, ok := root.Data.(LayoutData)
	if !ok {
		return "", fmt.Errorf("%w: root block is %s, want %s", ErrInvalidDocument, root.Type(), TypeLayout)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"/></head>\n")
	fmt.Fprintf(&sb, "<body style=\"margin:0;padding:0;background-color:%s;\">\n", cssColor(layout.BackdropColor))

	font := fontStacks[layout.FontFamily]
	if font == "" {
		font = fontStacks["MODERN_SANS"]
	}
	fmt.Fprintf(&sb,
		"<div style=\"max-width:600px;margin:0 auto;background-color:%s;color:%s;font-family:%s;\">\n",
		cssColor(layout.CanvasColor), cssColor(layout.TextColor), font)

	for _, id := range layout.ChildrenIDs {
		if err := renderBlock(&sb, doc, id); err != nil {
			return "", err
		}
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String(), nil
}

func renderBlock(sb *strings.Builder, doc *Document, id string) error {
	b, ok := doc.Block(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBlock, id)
	}

	switch data := b.Data.(type) {
	case HeadingData:
		level := data.Level
		switch level {
		case "h1", "h2", "h3":
		default:
			level = "h2"
		}
		fmt.Fprintf(sb, "<%s style=\"margin:0;%s\">%s</%s>\n",
			level, inlineStyle(data.Style), html.EscapeString(data.Text), level)

	case TextData:
		fmt.Fprintf(sb, "<p style=\"margin:0;%s\">%s</p>\n",
			inlineStyle(data.Style), textHTML(data.Text, data.Markdown))

	case ImageData:
		attrs := ""
		if data.Width > 0 {
			attrs += fmt.Sprintf(" width=\"%d\"", data.Width)
		}
		if data.Height > 0 {
			attrs += fmt.Sprintf(" height=\"%d\"", data.Height)
		}
		fmt.Fprintf(sb, "<div style=\"%s\"><img src=%q alt=%q%s style=\"display:block;max-width:100%%;\"/></div>\n",
			inlineStyle(data.Style), data.URL, data.Alt, attrs)

	case DividerData:
		color := cssColor(data.LineColor)
		height := data.LineHeight
		if height <= 0 {
			height = 1
		}
		fmt.Fprintf(sb, "<div style=\"%s\"><hr style=\"border:none;border-top:%dpx solid %s;margin:0;\"/></div>\n",
			inlineStyle(data.Style), height, color)

	case ColumnsData:
		gap := data.ColumnsGap
		fmt.Fprintf(sb, "<table role=\"presentation\" width=\"100%%\" cellpadding=\"0\" cellspacing=\"0\" style=\"%s\"><tr>\n",
			inlineStyle(data.Style))
		width := 100 / max(data.ColumnsCount, 1)
		for i, col := range data.Columns {
			pad := ""
			if i > 0 && gap > 0 {
				pad = fmt.Sprintf("padding-left:%dpx;", gap)
			}
			fmt.Fprintf(sb, "<td width=\"%d%%\" valign=\"top\" style=\"%s\">\n", width, pad)
			for _, childID := range col.ChildrenIDs {
				if err := renderBlock(sb, doc, childID); err != nil {
					return err
				}
			}
			sb.WriteString("</td>\n")
		}
		sb.WriteString("</tr></table>\n")

	case LayoutData:
		// Nested layouts never occur in the fixed block vocabulary; render
		// children flat rather than failing so a hand-built document still
		// produces output.
		for _, childID := range data.ChildrenIDs {
			if err := renderBlock(sb, doc, childID); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("%w: block %q has unsupported type %s", ErrInvalidDocument, id, b.Type())
	}
	return nil
}

// textHTML escapes text content and applies the markdown subset: newlines
// become <br/>, and when markdown is enabled **spans** become <strong>.
func textHTML(text string, markdown bool) string {
	escaped := html.EscapeString(text)
	if markdown {
		escaped = boldSpan.ReplaceAllString(escaped, "<strong>$1</strong>")
	}
	return strings.ReplaceAll(escaped, "\n", "<br/>")
}

// inlineStyle serializes a Style into CSS declarations. Unset fields are
// omitted so equal styles always serialize identically.
func inlineStyle(s Style) string {
	var sb strings.Builder
	if p := s.Padding; p != nil {
		fmt.Fprintf(&sb, "padding:%dpx %dpx %dpx %dpx;", p.Top, p.Right, p.Bottom, p.Left)
	}
	if s.Color != "" {
		sb.WriteString("color:" + s.Color + ";")
	}
	if s.BackgroundColor != "" {
		sb.WriteString("background-color:" + s.BackgroundColor + ";")
	}
	if s.FontSize > 0 {
		sb.WriteString("font-size:" + strconv.Itoa(s.FontSize) + "px;")
	}
	if s.FontWeight != "" {
		sb.WriteString("font-weight:" + s.FontWeight + ";")
	}
	if s.TextAlign != "" {
		sb.WriteString("text-align:" + s.TextAlign + ";")
	}
	return sb.String()
}

func cssColor(c string) string {
	if c == "" {
		return "#FFFFFF"
	}
	return c
}
