package report_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compactconnect/notify/pkg/emaildoc"
	"github.com/compactconnect/notify/pkg/report"
)

func TestBuildReport_Empty(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildReport(nil, nil)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "License Data Summary")
	assert.Contains(t, html, "Compact Connect")
	assert.NotContains(t, html, "Ingest error")
	assert.NotContains(t, html, "Line ")
	assert.NotContains(t, html, "<hr ")
}

func TestBuildReport_SingleIngestFailure(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildReport([]report.IngestFailureRecord{{
		Compact:      "aslp",
		Jurisdiction: "oh",
		EventTime:    time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC),
		Errors:       []string{"file was not valid CSV", "missing header row"},
	}}, nil)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "Ingest error"))
	assert.Equal(t, 1, strings.Count(html, "<hr "), "exactly one leading divider")
	assert.Contains(t, html, "file was not valid CSV<br/>missing header row")
	assert.Less(t, strings.Index(html, "<hr "), strings.Index(html, "Ingest error"),
		"divider precedes the failure section")
}

func TestBuildReport_ValidationErrorOrdering(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(1 * time.Hour)
	t2 := t0.Add(2 * time.Hour)

	rec := func(n int, at time.Time, field string) report.ValidationErrorRecord {
		return report.ValidationErrorRecord{
			Compact:      "aslp",
			Jurisdiction: "oh",
			EventTime:    at,
			RecordNumber: n,
			Errors:       map[string][]string{field: {"is required"}},
		}
	}

	// Input order 2@t0, 1@t2, 1@t1 must render as 1@t1, 1@t2, 2@t0.
	doc, err := report.BuildReport(nil, []report.ValidationErrorRecord{
		rec(2, t0, "homeState"),
		rec(1, t2, "licenseNumber"),
		rec(1, t1, "dateOfBirth"),
	})
	require.NoError(t, err)

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)

	first := strings.Index(html, "dateOfBirth")
	second := strings.Index(html, "licenseNumber")
	third := strings.Index(html, "homeState")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second, "same record number: earlier event time first")
	assert.Less(t, second, third, "record number ascending")
	assert.Equal(t, 2, strings.Count(html, "Line 1"))
	assert.Equal(t, 1, strings.Count(html, "Line 2"))
}

func TestBuildReport_FieldErrorText(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildReport(nil, []report.ValidationErrorRecord{{
		RecordNumber: 7,
		EventTime:    time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC),
		Errors: map[string][]string{
			"licenseType": {"must be one of X, Y", "smells bad"},
		},
	}})
	require.NoError(t, err)

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "licenseType:<br/>must be one of X, Y<br/>smells bad")
}

func TestBuildReport_SortsFieldsAndValidData(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildReport(nil, []report.ValidationErrorRecord{{
		RecordNumber: 3,
		EventTime:    time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC),
		Errors: map[string][]string{
			"zebra": {"bad"},
			"alpha": {"worse"},
		},
		ValidData: map[string]any{
			"lastName":  "Smith",
			"firstName": "Jo",
		},
	}})
	require.NoError(t, err)

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)

	assert.Less(t, strings.Index(html, "alpha:"), strings.Index(html, "zebra:"))
	assert.Less(t, strings.Index(html, "firstName: Jo"), strings.Index(html, "lastName: Smith"))
	assert.Contains(t, html, "PRACTITIONER INFO")
}

func TestBuildReport_NoDanglingReferences(t *testing.T) {
	t.Parallel()

	// Property-style check over randomly generated record sets.
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for range 25 {
		var failures []report.IngestFailureRecord
		for i := range rng.Intn(5) {
			failures = append(failures, report.IngestFailureRecord{
				EventTime: base.Add(time.Duration(i) * time.Minute),
				Errors:    []string{fmt.Sprintf("error %d", rng.Intn(100))},
			})
		}
		var validation []report.ValidationErrorRecord
		for range rng.Intn(8) {
			validation = append(validation, report.ValidationErrorRecord{
				RecordNumber: rng.Intn(20),
				EventTime:    base.Add(time.Duration(rng.Intn(1000)) * time.Second),
				Errors:       map[string][]string{fmt.Sprintf("field%d", rng.Intn(5)): {"invalid"}},
				ValidData:    map[string]any{"id": rng.Intn(1000)},
			})
		}

		doc, err := report.BuildReport(failures, validation)
		require.NoError(t, err)
		require.NoError(t, doc.Validate())

		_, err = emaildoc.Render(doc)
		require.NoError(t, err)
	}
}

func TestBuildReport_VisibleContentIsPure(t *testing.T) {
	t.Parallel()

	input := []report.ValidationErrorRecord{{
		RecordNumber: 4,
		EventTime:    time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC),
		Errors:       map[string][]string{"licenseNumber": {"is required"}},
		ValidData:    map[string]any{"familyName": "Okafor"},
	}}

	build := func() string {
		doc, err := report.BuildReport(nil, input)
		require.NoError(t, err)
		html, err := emaildoc.Render(doc)
		require.NoError(t, err)
		return html
	}

	// Block ids are random but never appear in rendered output, so two
	// builds over the same input are byte-identical.
	assert.Equal(t, build(), build())
}

func TestBuildAllsWellReport(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildAllsWellReport()
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "processed successfully")
	assert.NotContains(t, html, "Ingest error")
}

func TestBuildNoUploadsReport(t *testing.T) {
	t.Parallel()

	doc, err := report.BuildNoUploadsReport()
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	html, err := emaildoc.Render(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "No license data was uploaded")
}

func TestWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 6, 4, 0, 0, 0, time.UTC)

	day := report.PriorDay(now)
	assert.Equal(t, now.Add(-24*time.Hour), day.Start)
	assert.Equal(t, now, day.End)
	assert.True(t, day.Contains(now.Add(-time.Hour)))
	assert.False(t, day.Contains(now), "half-open on the right")

	week := report.TrailingWeek(now)
	assert.Equal(t, now.Add(-7*24*time.Hour), week.Start)
	assert.True(t, week.Contains(now.Add(-6*24*time.Hour)))
}
