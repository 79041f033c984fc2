package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/compactconnect/notify/pkg/emaildoc"
)

// Report chrome constants shared by every variant.
const (
	logoURL       = "https://app.compactconnect.org/img/email/compact-connect-logo.png"
	reportTitle   = "License Data Summary"
	footerText    = "© Compact Connect. This is an automated message; replies are not monitored."
	accentColor   = "#2459A9"
	mutedColor    = "#525252"
	dividerColor  = "#D9D9D9"
	columnGap     = 16
	ingestHeading = "Ingest error"
)

// Subheading texts for the three mutually exclusive report variants.
const (
	subheadingErrors   = "Errors were found in the license data uploaded over the reporting period. Each item below needs operator attention."
	subheadingAllsWell = "All license data uploaded this week was processed successfully. There are no errors to report."
	subheadingNoUpload = "No license data was uploaded this week. If uploads were expected, please investigate with the jurisdiction."
)

// dividerFragment returns a single Divider block. Every insertion mints a
// fresh id rather than sharing one fixed divider block: shared instances are
// only safe if the renderer treats child lists purely as references, and a
// fresh id keeps that assumption out of the contract entirely.
func dividerFragment() emaildoc.Fragment {
	id := emaildoc.NewBlockID()
	return emaildoc.Fragment{
		RootID: id,
		Blocks: []emaildoc.Block{{
			ID: id,
			Data: emaildoc.DividerData{
				Style:     emaildoc.Style{Padding: &emaildoc.Padding{Top: 16, Bottom: 16, Left: 24, Right: 24}},
				LineColor: dividerColor,
			},
		}},
	}
}

// headerFragments returns the shared report header: logo image, title
// heading, and the variant-specific subheading text.
func headerFragments(subheading string) []emaildoc.Fragment {
	imageID := emaildoc.NewBlockID()
	headingID := emaildoc.NewBlockID()
	subID := emaildoc.NewBlockID()
	return []emaildoc.Fragment{
		{RootID: imageID, Blocks: []emaildoc.Block{{
			ID: imageID,
			Data: emaildoc.ImageData{
				Style: emaildoc.Style{Padding: &emaildoc.Padding{Top: 24, Bottom: 8, Left: 24, Right: 24}},
				URL:   logoURL,
				Alt:   "Compact Connect",
				Width: 200,
			},
		}}},
		{RootID: headingID, Blocks: []emaildoc.Block{{
			ID: headingID,
			Data: emaildoc.HeadingData{
				Style: emaildoc.Style{Padding: &emaildoc.Padding{Top: 8, Bottom: 4, Left: 24, Right: 24}, Color: accentColor},
				Text:  reportTitle,
				Level: "h1",
			},
		}}},
		{RootID: subID, Blocks: []emaildoc.Block{{
			ID: subID,
			Data: emaildoc.TextData{
				Style: emaildoc.Style{Padding: &emaildoc.Padding{Top: 4, Bottom: 16, Left: 24, Right: 24}, Color: mutedColor},
				Text:  subheading,
			},
		}}},
	}
}

// ingestFailureFragment projects one batch-level failure into a two-column
// row: a fixed "Ingest error" label on the left, the failure's messages
// joined with newlines on the right. The left column keeps an empty
// placeholder text block under the label for visual symmetry with the
// validation-error rows.
func ingestFailureFragment(rec IngestFailureRecord) emaildoc.Fragment {
	labelID := emaildoc.NewBlockID()
	placeholderID := emaildoc.NewBlockID()
	errorsID := emaildoc.NewBlockID()
	colsID := emaildoc.NewBlockID()

	return emaildoc.Fragment{
		RootID: colsID,
		Blocks: []emaildoc.Block{
			{ID: labelID, Data: emaildoc.HeadingData{
				Style: emaildoc.Style{FontWeight: "bold"},
				Text:  ingestHeading,
				Level: "h3",
			}},
			{ID: placeholderID, Data: emaildoc.TextData{Text: ""}},
			{ID: errorsID, Data: emaildoc.TextData{
				Text: strings.Join(rec.Errors, "\n"),
			}},
			{ID: colsID, Data: emaildoc.ColumnsData{
				Style:        emaildoc.Style{Padding: &emaildoc.Padding{Left: 24, Right: 24}},
				ColumnsCount: 2,
				ColumnsGap:   columnGap,
				Columns: []emaildoc.Column{
					{ChildrenIDs: []string{labelID, placeholderID}},
					{ChildrenIDs: []string{errorsID}},
				},
			}},
		},
	}
}

// validationErrorFragment projects one row-level failure into a two-column
// row. Left column: "Line {n}" label plus the per-field error texts. Right
// column: the fields that did parse, labelled PRACTITIONER INFO.
//
// Both sides sort their per-field lines lexicographically by rendered text
// before joining. The sort is load-bearing: map iteration order is undefined,
// and reviewers diff these reports run against run.
func validationErrorFragment(rec ValidationErrorRecord) emaildoc.Fragment {
	labelID := emaildoc.NewBlockID()
	errorsID := emaildoc.NewBlockID()
	infoLabelID := emaildoc.NewBlockID()
	infoID := emaildoc.NewBlockID()
	colsID := emaildoc.NewBlockID()

	fieldTexts := make([]string, 0, len(rec.Errors))
	for field, messages := range rec.Errors {
		fieldTexts = append(fieldTexts, fmt.Sprintf("%s:\n%s", field, strings.Join(messages, "\n")))
	}
	sort.Strings(fieldTexts)

	validLines := make([]string, 0, len(rec.ValidData))
	for field, value := range rec.ValidData {
		validLines = append(validLines, fmt.Sprintf("%s: %v", field, value))
	}
	sort.Strings(validLines)

	return emaildoc.Fragment{
		RootID: colsID,
		Blocks: []emaildoc.Block{
			{ID: labelID, Data: emaildoc.HeadingData{
				Style: emaildoc.Style{FontWeight: "bold"},
				Text:  fmt.Sprintf("Line %d", rec.RecordNumber),
				Level: "h3",
			}},
			{ID: errorsID, Data: emaildoc.TextData{
				Text:     strings.Join(fieldTexts, "\n"),
				Markdown: true,
			}},
			{ID: infoLabelID, Data: emaildoc.TextData{
				Style: emaildoc.Style{FontWeight: "bold", Color: mutedColor},
				Text:  "PRACTITIONER INFO",
			}},
			{ID: infoID, Data: emaildoc.TextData{
				Text:     strings.Join(validLines, "\n"),
				Markdown: true,
			}},
			{ID: colsID, Data: emaildoc.ColumnsData{
				Style:        emaildoc.Style{Padding: &emaildoc.Padding{Left: 24, Right: 24}},
				ColumnsCount: 2,
				ColumnsGap:   columnGap,
				Columns: []emaildoc.Column{
					{ChildrenIDs: []string{labelID, errorsID}},
					{ChildrenIDs: []string{infoLabelID, infoID}},
				},
			}},
		},
	}
}

// footerFragment returns the fixed copyright footer.
func footerFragment() emaildoc.Fragment {
	id := emaildoc.NewBlockID()
	return emaildoc.Fragment{
		RootID: id,
		Blocks: []emaildoc.Block{{
			ID: id,
			Data: emaildoc.TextData{
				Style: emaildoc.Style{
					Padding:   &emaildoc.Padding{Top: 24, Bottom: 24, Left: 24, Right: 24},
					Color:     mutedColor,
					FontSize:  12,
					TextAlign: "center",
				},
				Text: footerText,
			},
		}},
	}
}
