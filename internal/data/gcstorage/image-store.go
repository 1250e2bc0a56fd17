// gcstorage holds the Cloud Storage adapter for the project images.
package gcstorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
)

const publicURLPrefix = "https://storage.googleapis.com/"

type imageStore struct {
	bucket string
	client *storage.Client
}

func NewImageStore(client *storage.Client, bucket string) (portfolio.ImageStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name is empty")
	}
	return &imageStore{bucket: bucket, client: client}, nil
}

// Upload writes the image under projects/<uuid>_<filename> and returns its
// public URL.
func (s *imageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {

	object := fmt.Sprintf("projects/%s_%s", uuid.NewString(), filename)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("unable to upload image to storage. error: %v", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("unable to finalize image upload. error: %v", err)
	}

	return publicURLPrefix + s.bucket + "/" + object, nil
}

// Delete removes the object behind a public URL. A URL outside this bucket
// or an already-gone object is not an error - project deletion must not fail
// on a missing image.
func (s *imageStore) Delete(ctx context.Context, publicURL string) error {

	object, ok := strings.CutPrefix(publicURL, publicURLPrefix+s.bucket+"/")
	if !ok || object == "" {
		return nil
	}

	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to delete image from storage. error: %v", err)
	}
	return nil
}
