package drafts

import (
	"regexp"
	"strings"
)

// MediaKind is the class a media URL falls into, judged by file extension only
type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaGIF     MediaKind = "gif"
	MediaVideo   MediaKind = "video"
	MediaUnknown MediaKind = "unknown"
)

var (
	imagePattern = regexp.MustCompile(`(?i)\.(png|jpe?g)(\?.*)?$`)
	gifPattern   = regexp.MustCompile(`(?i)\.gif(\?.*)?$`)
	videoPattern = regexp.MustCompile(`(?i)\.(mp4|mov|webm)(\?.*)?$`)
)

// ClassifyMedia returns the media class of a URL.
// Content is never inspected; a ".jpg" that is really a video is an image here.
func ClassifyMedia(url string) MediaKind {
	url = strings.TrimSpace(url)
	switch {
	case imagePattern.MatchString(url):
		return MediaImage
	case gifPattern.MatchString(url):
		return MediaGIF
	case videoPattern.MatchString(url):
		return MediaVideo
	default:
		return MediaUnknown
	}
}

// mediaCounts partitions urls by class
type mediaCounts struct {
	unknown []string
	images  int
	gifs    int
	videos  int
}

func countMedia(urls []string) mediaCounts {
	var c mediaCounts
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		switch ClassifyMedia(u) {
		case MediaImage:
			c.images++
		case MediaGIF:
			c.gifs++
		case MediaVideo:
			c.videos++
		default:
			c.unknown = append(c.unknown, u)
		}
	}
	return c
}
