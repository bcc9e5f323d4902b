package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

const (
	photoFormField     = "file"
	defaultContentType = "application/octet-stream"
)

//nolint:golint,gochecknoglobals
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *Client) ListPhotos(ctx context.Context, tripID string) ([]Photo, error) {
	var photos []Photo
	err := c.do(ctx, "list_photos", http.MethodGet, c.endpoint("api", "trips", url.PathEscape(tripID), "photos"), nil, "", &photos)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// UploadPhoto streams r to the API as the single multipart part "file",
// keeping the original filename and content type.
func (c *Client) UploadPhoto(ctx context.Context, tripID, filename, contentType string, r io.Reader) (Photo, error) {
	if r == nil || filename == "" {
		return Photo{}, ErrMissingUpload
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	pr, pw := io.Pipe()
	// Unblocks the writer if the request ends before the body is consumed.
	defer pr.Close()
	form := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, photoFormField, quoteEscaper.Replace(filename)))
		header.Set("Content-Type", contentType)
		part, err := form.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	var photo Photo
	err := c.do(ctx, "upload_photo", http.MethodPost, c.endpoint("api", "trips", url.PathEscape(tripID), "photos"), pr, form.FormDataContentType(), &photo)
	return photo, err
}

func (c *Client) DeletePhoto(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_photo", http.MethodDelete, c.endpoint("api", "photos", strconv.FormatInt(id, 10)), nil, "", nil)
}
