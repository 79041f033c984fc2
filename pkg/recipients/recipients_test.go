package recipients_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compactconnect/notify/pkg/recipients"
)

type mockRedis struct {
	strings map[string]string
	sets    map[string][]string
}

func (m *mockRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if val, ok := m.strings[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *mockRedis) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(m.sets[key], nil)
}

func TestRedisSource(t *testing.T) {
	t.Parallel()

	source := recipients.NewRedisSource(&mockRedis{
		strings: map[string]string{
			"recipients:aslp":    `["compact-ops@aslp.example.org"]`,
			"recipients:aslp:oh": `["ops@oh.example.gov","backup@oh.example.gov"]`,
			"recipients:broken":  `not-json`,
		},
		sets: map[string][]string{
			"recipients:targets": {"aslp/oh", "aslp/ky"},
		},
	})

	t.Run("targets", func(t *testing.T) {
		t.Parallel()

		targets, err := source.Targets(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []recipients.Target{
			{Compact: "aslp", Jurisdiction: "oh"},
			{Compact: "aslp", Jurisdiction: "ky"},
		}, targets)
	})

	t.Run("jurisdiction recipients", func(t *testing.T) {
		t.Parallel()

		addrs, err := source.JurisdictionRecipients(context.Background(), "aslp", "oh")
		require.NoError(t, err)
		assert.Equal(t, []string{"ops@oh.example.gov", "backup@oh.example.gov"}, addrs)
	})

	t.Run("compact recipients", func(t *testing.T) {
		t.Parallel()

		addrs, err := source.CompactRecipients(context.Background(), "aslp")
		require.NoError(t, err)
		assert.Equal(t, []string{"compact-ops@aslp.example.org"}, addrs)
	})

	t.Run("missing key yields empty list", func(t *testing.T) {
		t.Parallel()

		addrs, err := source.JurisdictionRecipients(context.Background(), "aslp", "nm")
		require.NoError(t, err)
		assert.Empty(t, addrs)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()

		_, err := source.CompactRecipients(context.Background(), "broken")
		require.ErrorIs(t, err, recipients.ErrMalformedEntry)
	})

	t.Run("malformed target member", func(t *testing.T) {
		t.Parallel()

		bad := recipients.NewRedisSource(&mockRedis{
			sets: map[string][]string{"recipients:targets": {"no-separator"}},
		})
		_, err := bad.Targets(context.Background())
		require.ErrorIs(t, err, recipients.ErrMalformedEntry)
	})
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
compacts:
  aslp:
    recipients:
      - compact-ops@aslp.example.org
    jurisdictions:
      oh:
        recipients:
          - ops@oh.example.gov
      ky:
        recipients:
          - ops@ky.example.gov
  octp:
    recipients:
      - compact-ops@octp.example.org
    jurisdictions:
      ne:
        recipients:
          - ops@ne.example.gov
`), 0644))

	source, err := recipients.NewFileSource(path)
	require.NoError(t, err)

	targets, err := source.Targets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []recipients.Target{
		{Compact: "aslp", Jurisdiction: "ky"},
		{Compact: "aslp", Jurisdiction: "oh"},
		{Compact: "octp", Jurisdiction: "ne"},
	}, targets)

	addrs, err := source.JurisdictionRecipients(context.Background(), "aslp", "oh")
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@oh.example.gov"}, addrs)

	compactAddrs, err := source.CompactRecipients(context.Background(), "octp")
	require.NoError(t, err)
	assert.Equal(t, []string{"compact-ops@octp.example.org"}, compactAddrs)

	missing, err := source.JurisdictionRecipients(context.Background(), "aslp", "zz")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestNewFileSource_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := recipients.NewFileSource(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, recipients.ErrFailedToReadConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("compacts: [not: a map"), 0644))
		_, err := recipients.NewFileSource(path)
		require.ErrorIs(t, err, recipients.ErrMalformedEntry)
	})
}
