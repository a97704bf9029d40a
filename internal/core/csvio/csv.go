// Package csvio maps posts to and from the spreadsheet format used for bulk
// scheduling: Text, Image URL, Tags, Posting Time.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
)

// Columns is the export header, in order
var Columns = []string{"Text", "Image URL", "Tags", "Posting Time"}

// ExportTimeLayout is how Posting Time is written, in the export location
const ExportTimeLayout = "2006-01-02 15:04"

// header aliases accepted on import, first match wins
var (
	textHeaders  = []string{"Text", "text"}
	mediaHeaders = []string{"Image URL", "Image URLs", "mediaUrls"}
	tagHeaders   = []string{"Tags", "tags"}
	timeHeaders  = []string{"Posting Time", "scheduledAt"}
)

// ErrMissingHeader is returned when the input has no recognisable header row
var ErrMissingHeader = errors.New("csv has no Text column")

// Row is one imported line. Values are mapped but not validated.
type Row struct {
	Text        string
	PostingTime string
	MediaURLs   []string
	Tags        []string
	Line        int
}

// Draft builds the draft for this row under accountID
func (r Row) Draft(accountID string) drafts.Draft {
	return drafts.Draft{
		Text:        r.Text,
		ScheduledAt: r.PostingTime,
		AccountID:   accountID,
		MediaURLs:   r.MediaURLs,
		Tags:        r.Tags,
	}
}

// Decode reads a CSV document with a header row. Blank lines are skipped and
// rows may have fewer fields than the header.
func Decode(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	textCol := lookup(index, textHeaders)
	if textCol < 0 {
		return nil, ErrMissingHeader
	}
	mediaCol := lookup(index, mediaHeaders)
	tagCol := lookup(index, tagHeaders)
	timeCol := lookup(index, timeHeaders)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read csv: %w", err)
		}
		if blank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{
			Line:        line,
			Text:        field(record, textCol),
			PostingTime: strings.TrimSpace(field(record, timeCol)),
			MediaURLs:   drafts.SplitList(field(record, mediaCol)),
			Tags:        drafts.SplitList(field(record, tagCol)),
		})
	}
	return rows, nil
}

// Encode writes posts with the export header. Times are shown in loc (UTC when nil).
func Encode(w io.Writer, list []*posts.Post, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range list {
		record := []string{
			p.Text,
			strings.Join(p.MediaURLs, ","),
			strings.Join(p.Tags, ","),
			p.ScheduledAt.In(loc).Format(ExportTimeLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write post %s: %w", p.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func lookup(index map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := index[n]; ok {
			return i
		}
	}
	return -1
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
