package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"github.com/google/uuid"
	"github.com/tinlanh/church-admin/internal/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

const tokenMetadataKey = "firebaseStorageDownloadTokens"

// FirebaseStore keeps objects in a Firebase Storage bucket and hands out
// token-based download URLs the way the Firebase SDKs do.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStore(ctx context.Context, app *firebase.App, bucketName string) (*FirebaseStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining storage client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("obtaining bucket %q: %w", bucketName, err)
	}

	return &FirebaseStore{bucket: bucket, bucketName: bucketName}, nil
}

// DownloadURL is the public media link of an object.
func DownloadURL(bucket, objectPath, token string) string {
	u := "https://firebasestorage.googleapis.com/v0/b/" + bucket + "/o/" + url.PathEscape(objectPath) + "?alt=media"
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

func (s *FirebaseStore) item(attrs *gcs.ObjectAttrs) *model.ImageItem {
	return &model.ImageItem{
		URL:  DownloadURL(s.bucketName, attrs.Name, attrs.Metadata[tokenMetadataKey]),
		Name: path.Base(attrs.Name),
		Path: attrs.Name,
	}
}

func (s *FirebaseStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (*model.ImageItem, error) {
	obj := s.bucket.Object(objectPath).If(gcs.Conditions{DoesNotExist: true})

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{tokenMetadataKey: uuid.NewString()}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		if isPreconditionFailed(err) {
			return nil, model.ErrAlreadyExists
		}
		return nil, fmt.Errorf("close object: %w", err)
	}

	return s.item(w.Attrs()), nil
}

func (s *FirebaseStore) List(ctx context.Context, prefix string) ([]*model.ImageItem, error) {
	it := s.bucket.Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	items := make([]*model.ImageItem, 0)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		// Sub-folders come back as prefix-only entries.
		if attrs.Name == "" {
			continue
		}

		items = append(items, s.item(attrs))
	}

	return items, nil
}

func (s *FirebaseStore) Delete(ctx context.Context, objectPath string) error {
	err := s.bucket.Object(objectPath).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return model.ErrNoRecord
	}
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

// isPreconditionFailed reports a DoesNotExist condition that did not hold.
func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}
