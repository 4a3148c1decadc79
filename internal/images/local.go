package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tinlanh/church-admin/internal/model"
)

// LocalStore keeps objects in a directory that the API serves under /files/.
type LocalStore struct {
	root      string
	publicURL string
}

func NewLocalStore(root, publicURL string) *LocalStore {
	return &LocalStore{root: root, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (s *LocalStore) item(objectPath string) *model.ImageItem {
	return &model.ImageItem{
		URL:  s.publicURL + "/files/" + objectPath,
		Name: path.Base(objectPath),
		Path: objectPath,
	}
}

func (s *LocalStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (*model.ImageItem, error) {
	full := filepath.Join(s.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	file, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, model.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return s.item(objectPath), nil
}

func (s *LocalStore) List(_ context.Context, prefix string) ([]*model.ImageItem, error) {
	dir := strings.TrimSuffix(prefix, "/")

	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.ImageItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	items := make([]*model.ImageItem, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		items = append(items, s.item(dir+"/"+e.Name()))
	}

	return items, nil
}

func (s *LocalStore) Delete(_ context.Context, objectPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(objectPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return model.ErrNoRecord
	}
	if err != nil {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}
