package drafts

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Issue messages. Callers match on these, so they are part of the API.
const (
	IssueTextRequired    = "Text is required"
	IssueInvalidDate     = "Scheduled date is invalid"
	IssueNotInFuture     = "Scheduled time must be in the future"
	IssueHandleRequired  = "Handle is required"
	IssueTooManyImages   = "Max 4 images"
	IssueTooManyGIFs     = "Only one GIF"
	IssueTooManyVideos   = "Only one video"
	IssueGIFMixed        = "GIF cannot mix with images/videos"
	IssueVideoMixed      = "Video cannot mix with images/GIFs"
	invalidMediaTemplate = "Invalid media: %s"
)

// IssueTextTooLong is reported when the text is over MaxTextLength
var IssueTextTooLong = fmt.Sprintf("Tweet exceeds %d characters", MaxTextLength)

// Validate returns the problems with d in check order. An empty result means
// the draft may be persisted. It never fails and never modifies d.
func Validate(d Draft, opts Options) []string {
	issues := []string{}

	if strings.TrimSpace(d.Text) == "" {
		issues = append(issues, IssueTextRequired)
	}
	if utf8.RuneCountInString(d.Text) > MaxTextLength {
		issues = append(issues, IssueTextTooLong)
	}

	when, err := ParseScheduledAt(d.ScheduledAt, opts.location())
	if err != nil {
		issues = append(issues, IssueInvalidDate)
	} else if opts.RequireFuture && !when.After(opts.now()) {
		issues = append(issues, IssueNotInFuture)
	}

	if strings.TrimSpace(d.AccountID) == "" {
		issues = append(issues, IssueHandleRequired)
	}

	media := countMedia(d.MediaURLs)
	if media.images > MaxImages {
		issues = append(issues, IssueTooManyImages)
	}
	if media.gifs > 1 {
		issues = append(issues, IssueTooManyGIFs)
	}
	if media.videos > 1 {
		issues = append(issues, IssueTooManyVideos)
	}
	if media.gifs > 0 && (media.images > 0 || media.videos > 0) {
		issues = append(issues, IssueGIFMixed)
	}
	if media.videos > 0 && (media.images > 0 || media.gifs > 0) {
		issues = append(issues, IssueVideoMixed)
	}
	for _, u := range media.unknown {
		issues = append(issues, InvalidMediaIssue(u))
	}

	return issues
}

// InvalidMediaIssue is the message reported for an unrecognised media URL
func InvalidMediaIssue(url string) string {
	return fmt.Sprintf(invalidMediaTemplate, url)
}
