package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Perch/internal/core/posts"
)

func TestDecode_StandardColumns(t *testing.T) {
	input := `Text,Image URL,Tags,Posting Time
"Launch day, finally",https://x.test/a.jpg,"Launch, Product",2026-05-01 09:00
Second post,,,2026-05-02T10:30:00Z
`
	rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Line:        2,
		Text:        "Launch day, finally",
		PostingTime: "2026-05-01 09:00",
		MediaURLs:   []string{"https://x.test/a.jpg"},
		Tags:        []string{"Launch", "Product"},
	}, rows[0])

	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "2026-05-02T10:30:00Z", rows[1].PostingTime)
	assert.Empty(t, rows[1].MediaURLs)
	assert.Empty(t, rows[1].Tags)
}

func TestDecode_HeaderAliases(t *testing.T) {
	input := "text,mediaUrls,scheduledAt\nhello,\"a.png, b.png\",2026-05-01T09:00\n"
	rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hello", rows[0].Text)
	assert.Equal(t, []string{"a.png", "b.png"}, rows[0].MediaURLs)
	assert.Equal(t, "2026-05-01T09:00", rows[0].PostingTime)
}

func TestDecode_ShortAndBlankRows(t *testing.T) {
	input := "\ufeffText,Image URLs,Tags,Posting Time\nonly text\n,,,\n\nlast,,,2026-01-01 00:00\n"
	rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "only text", rows[0].Text)
	assert.Equal(t, "", rows[0].PostingTime)
	assert.Equal(t, "last", rows[1].Text)
	assert.Equal(t, 5, rows[1].Line)
}

func TestDecode_MissingHeader(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = Decode(strings.NewReader("Title,When\nx,y\n"))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("Text,Posting Time\n\"unterminated,2026-01-01\n"))
	assert.Error(t, err)
}

func TestRowDraft(t *testing.T) {
	row := Row{Text: "t", PostingTime: "2026-01-01 10:00", MediaURLs: []string{"a.gif"}, Tags: []string{"x"}}
	d := row.Draft("h2")
	assert.Equal(t, "h2", d.AccountID)
	assert.Equal(t, "2026-01-01 10:00", d.ScheduledAt)
	assert.Equal(t, []string{"a.gif"}, d.MediaURLs)
}

func TestEncode(t *testing.T) {
	list := []*posts.Post{
		{
			ID:          "p1",
			Text:        "Hello, world",
			MediaURLs:   []string{"a.jpg", "b.png"},
			Tags:        []string{"Launch"},
			ScheduledAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "p2",
			Text:        "plain",
			ScheduledAt: time.Date(2026, 5, 2, 23, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, list, time.FixedZone("UTC+2", 2*3600)))

	assert.Equal(t, "Text,Image URL,Tags,Posting Time\n"+
		"\"Hello, world\",\"a.jpg,b.png\",Launch,2026-05-01 11:00\n"+
		"plain,,,2026-05-03 01:30\n", buf.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	list := []*posts.Post{{
		Text:        "multi\nline \"quoted\"",
		MediaURLs:   []string{"a.mp4"},
		Tags:        []string{"one", "two"},
		ScheduledAt: time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, list, nil))

	rows, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, list[0].Text, rows[0].Text)
	assert.Equal(t, list[0].MediaURLs, rows[0].MediaURLs)
	assert.Equal(t, list[0].Tags, rows[0].Tags)
	assert.Equal(t, "2026-07-04 12:00", rows[0].PostingTime)
}
