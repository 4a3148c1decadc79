package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinlanh/church-admin/internal/model"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1736150400123)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hero.jpg", "images/1736150400123_hero.jpg"},
		{"accents and spaces", "Giáng Sinh 2024.png", "images/1736150400123_Gi_ng_Sinh_2024.png"},
		{"dashes kept", "a-b.c", "images/1736150400123_a-b.c"},
		{"slashes", "../x/y.png", "images/1736150400123_.._x_y.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectName(now, tt.in))
		})
	}
}

func TestCheckPath(t *testing.T) {
	assert.NoError(t, checkPath("images/1_a.png"))

	for _, p := range []string{"", "images", "images/", "other/1_a.png", "images/../secret", "/images/1_a.png"} {
		assert.ErrorIs(t, checkPath(p), model.ErrInvalidInput, p)
	}
}

func newTestService(t *testing.T, maxSize int64, maxWidth int) (*Service, *time.Time) {
	t.Helper()

	now := time.UnixMilli(1000)
	store := NewLocalStore(t.TempDir(), "http://localhost:8080/")
	s := NewService(store, zap.NewNop().Sugar(), maxSize, maxWidth, func() time.Time { return now })

	return s, &now
}

func TestServiceLifecycle(t *testing.T) {
	s, now := newTestService(t, 1024, 0)
	ctx := context.Background()

	first, err := s.Upload(ctx, "a.txt", "text/plain", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, "images/1000_a.txt", first.Path)
	assert.Equal(t, "1000_a.txt", first.Name)
	assert.Equal(t, "http://localhost:8080/files/images/1000_a.txt", first.URL)

	*now = time.UnixMilli(2000)
	_, err = s.Upload(ctx, "b.txt", "text/plain", strings.NewReader("second"))
	require.NoError(t, err)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2000_b.txt", items[0].Name)
	assert.Equal(t, "1000_a.txt", items[1].Name)

	require.NoError(t, s.Delete(ctx, first.Path))
	assert.ErrorIs(t, s.Delete(ctx, first.Path), model.ErrNoRecord)

	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestServiceListEmpty(t *testing.T) {
	s, _ := newTestService(t, 1024, 0)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestServiceUploadTooBig(t *testing.T) {
	s, _ := newTestService(t, 4, 0)

	_, err := s.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooBig)
}

func TestDownscale(t *testing.T) {
	var buf bytes.Buffer
	img := imaging.New(400, 100, color.White)
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	out, ok := downscale(buf.Bytes(), "wide.png", 200)
	require.True(t, ok)

	resized, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, resized.Bounds().Dx())
	assert.Equal(t, 50, resized.Bounds().Dy())

	_, ok = downscale(buf.Bytes(), "wide.png", 400)
	assert.False(t, ok)

	_, ok = downscale([]byte("not an image"), "x.png", 10)
	assert.False(t, ok)

	_, ok = downscale(buf.Bytes(), "wide.svg", 10)
	assert.False(t, ok)
}

func TestDownloadURL(t *testing.T) {
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/church.appspot.com/o/images%2F1_a.png?alt=media&token=abc",
		DownloadURL("church.appspot.com", "images/1_a.png", "abc"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLocalStoreUpload(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost/")
	ctx := context.Background()

	item, err := store.Upload(ctx, "images/1_a.txt", "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/files/images/1_a.txt", item.URL)

	_, err = store.Upload(ctx, "images/1_a.txt", "text/plain", strings.NewReader("b"))
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	data, err := os.ReadFile(filepath.Join(root, "images", "1_a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, err = store.Upload(ctx, "images/2_b.txt", "text/plain", io.MultiReader(strings.NewReader("partial"), failingReader{}))
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(root, "images", "2_b.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsPreconditionFailed(t *testing.T) {
	assert.True(t, isPreconditionFailed(fmt.Errorf("close: %w", &googleapi.Error{Code: http.StatusPreconditionFailed})))
	assert.False(t, isPreconditionFailed(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, isPreconditionFailed(errors.New("boom")))
}
