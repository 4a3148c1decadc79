// Package images keeps the uploaded image gallery in blob storage.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tinlanh/church-admin/internal/model"
	"go.uber.org/zap"
)

// Prefix is the folder every uploaded image lives in.
const Prefix = "images"

var ErrTooBig = errors.New("file too big")

// Store is a blob storage backend.
type Store interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (*model.ImageItem, error)
	List(ctx context.Context, prefix string) ([]*model.ImageItem, error)
	Delete(ctx context.Context, objectPath string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ObjectName builds "images/{unixMillis}_{sanitized name}".
func ObjectName(now time.Time, name string) string {
	return Prefix + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + unsafeChars.ReplaceAllString(name, "_")
}

// SortNewestFirst orders items by name descending, which is upload order
// given the millisecond prefix.
func SortNewestFirst(items []*model.ImageItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name > items[j].Name
	})
}

func checkPath(objectPath string) error {
	clean := path.Clean(objectPath)
	if clean != objectPath || !strings.HasPrefix(clean, Prefix+"/") || path.Base(clean) == Prefix {
		return fmt.Errorf("path %q: %w", objectPath, model.ErrInvalidInput)
	}
	return nil
}

type Service struct {
	store    Store
	logger   *zap.SugaredLogger
	maxSize  int64
	maxWidth int
	now      func() time.Time
}

func NewService(store Store, logger *zap.SugaredLogger, maxSize int64, maxWidth int, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		store:    store,
		logger:   logger,
		maxSize:  maxSize,
		maxWidth: maxWidth,
		now:      clock,
	}
}

func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Upload stores the file under a fresh object name, downscaling raster
// images wider than the configured limit.
func (s *Service) Upload(ctx context.Context, name, contentType string, r io.Reader) (*model.ImageItem, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("images.Upload: read: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooBig
	}

	resized, ok := downscale(data, name, s.maxWidth)
	if ok {
		s.logger.Debugw("Downscaled image", "name", name, "from", len(data), "to", len(resized))
		data = resized
	}

	item, err := s.store.Upload(ctx, ObjectName(s.now(), name), contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("images.Upload: %w", err)
	}

	s.logger.Infow("Uploaded image", "path", item.Path)

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]*model.ImageItem, error) {
	items, err := s.store.List(ctx, Prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("images.List: %w", err)
	}

	SortNewestFirst(items)

	return items, nil
}

func (s *Service) Delete(ctx context.Context, objectPath string) error {
	if err := checkPath(objectPath); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, objectPath); err != nil {
		return fmt.Errorf("images.Delete: %w", err)
	}

	s.logger.Infow("Deleted image", "path", objectPath)

	return nil
}
