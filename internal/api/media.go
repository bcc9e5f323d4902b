package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Media is an open photo stream from the API. Callers must close Body.
type Media struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// OpenMedia fetches a server relative file path such as
// "photos/rome-2024/IMG_0001.jpg". Paths that are empty or climb out of the
// API root return ErrInvalidMedia.
func (c *Client) OpenMedia(ctx context.Context, filepath string) (*Media, error) {
	segments, err := MediaSegments(filepath)
	if err != nil {
		return nil, err
	}
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	resp, err := c.send(ctx, "open_media", http.MethodGet, c.endpoint(escaped...), nil, "")
	if err != nil {
		return nil, err
	}
	return &Media{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

// MediaSegments splits a relative media path into its non-empty segments,
// rejecting "..".
func MediaSegments(filepath string) ([]string, error) {
	var segments []string
	for _, segment := range strings.Split(strings.ReplaceAll(filepath, "\\", "/"), "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			return nil, ErrInvalidMedia
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return nil, ErrInvalidMedia
	}
	return segments, nil
}
