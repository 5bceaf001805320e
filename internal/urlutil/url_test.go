package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/dberr"
)

func TestParseFullURL(t *testing.T) {
	u, err := Parse("https://example.com:8443/v1/data?limit=10#top")
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "example.com", u.Host)
	require.Equal(t, 8443, u.Port)
	require.Equal(t, "/v1/data", u.Path)
	require.Equal(t, "limit=10", u.Query)
	require.Equal(t, "top", u.Fragment)
}

func TestParseDefaultsPathToSlash(t *testing.T) {
	u, err := Parse("http://example.com")
	require.NoError(t, err)
	require.Equal(t, "/", u.Path)
	require.Equal(t, -1, u.Port)
}

func TestParseMissingSchemeIsInvalidInput(t *testing.T) {
	_, err := Parse("example.com/path")
	require.ErrorIs(t, err, dberr.InvalidInput)
}

func TestParsePortOutOfRange(t *testing.T) {
	_, err := Parse("http://example.com:99999/")
	require.ErrorIs(t, err, dberr.InvalidInput)
}

func TestRoundTripFormat(t *testing.T) {
	cases := []string{
		"https://example.com:8443/v1/data?limit=10#top",
		"http://example.com/",
		"ftp://host:21/a/b/c",
	}
	for _, s := range cases {
		u, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, s, u.Format())
	}
}
