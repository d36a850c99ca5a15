package analytics

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  AA  ", "aa"},
		{"CR2032", "cr2032"},
		{"1.5V", "1.5v"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuery(tt.in), "query %q", tt.in)
	}
}

func TestNormalizeQueryTruncates(t *testing.T) {
	long := strings.Repeat("ä", 150)
	q := NormalizeQuery(long)
	assert.Equal(t, MaxQueryLength, utf8.RuneCountInString(q))
	assert.True(t, utf8.ValidString(q))
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}

	require.NoError(t, r.RecordSearch(context.Background(), "aa", 3))

	popular, err := r.Popular(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, popular)
	assert.Empty(t, popular)

	unanswered, err := r.Unanswered(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, unanswered)
	assert.Empty(t, unanswered)
}
