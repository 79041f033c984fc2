package report

import (
	"sort"

	"github.com/compactconnect/notify/pkg/emaildoc"
)

// BuildReport assembles the error-summary document: header, one divider-led
// section per event record, footer.
//
// Ingest failures are emitted in input order - the event log already returns
// them time-ordered. Validation errors are sorted by (RecordNumber ascending,
// EventTime ascending): when one input row was re-validated after correction
// the earlier attempt sorts first, so an operator reading top-to-bottom sees
// that row's history chronologically. The sort is stable for anything not
// separated by that key.
//
// Empty inputs are not an error; zero records yields a header+footer
// document, since event counts are driven entirely by what jurisdictions
// actually submitted.
func BuildReport(ingestFailures []IngestFailureRecord, validationErrors []ValidationErrorRecord) (*emaildoc.Document, error) {
	doc := emaildoc.NewDocument()
	for _, frag := range headerFragments(subheadingErrors) {
		if err := doc.AppendFragment(emaildoc.RootBlockID, frag); err != nil {
			return nil, err
		}
	}

	for _, rec := range ingestFailures {
		if err := doc.AppendFragment(emaildoc.RootBlockID, dividerFragment()); err != nil {
			return nil, err
		}
		if err := doc.AppendFragment(emaildoc.RootBlockID, ingestFailureFragment(rec)); err != nil {
			return nil, err
		}
	}

	sorted := make([]ValidationErrorRecord, len(validationErrors))
	copy(sorted, validationErrors)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RecordNumber != sorted[j].RecordNumber {
			return sorted[i].RecordNumber < sorted[j].RecordNumber
		}
		return sorted[i].EventTime.Before(sorted[j].EventTime)
	})

	for _, rec := range sorted {
		if err := doc.AppendFragment(emaildoc.RootBlockID, dividerFragment()); err != nil {
			return nil, err
		}
		if err := doc.AppendFragment(emaildoc.RootBlockID, validationErrorFragment(rec)); err != nil {
			return nil, err
		}
	}

	if err := doc.AppendFragment(emaildoc.RootBlockID, footerFragment()); err != nil {
		return nil, err
	}
	return doc, nil
}

// BuildAllsWellReport assembles the weekly "no errors this week" variant:
// header with the all-clear subheading plus footer, no event sections.
func BuildAllsWellReport() (*emaildoc.Document, error) {
	return buildPlainReport(subheadingAllsWell)
}

// BuildNoUploadsReport assembles the weekly "nothing was uploaded" variant,
// sent when a jurisdiction submitted nothing in the trailing week.
func BuildNoUploadsReport() (*emaildoc.Document, error) {
	return buildPlainReport(subheadingNoUpload)
}

func buildPlainReport(subheading string) (*emaildoc.Document, error) {
	doc := emaildoc.NewDocument()
	for _, frag := range headerFragments(subheading) {
		if err := doc.AppendFragment(emaildoc.RootBlockID, frag); err != nil {
			return nil, err
		}
	}
	if err := doc.AppendFragment(emaildoc.RootBlockID, footerFragment()); err != nil {
		return nil, err
	}
	return doc, nil
}
