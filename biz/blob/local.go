package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local keeps chunks on the filesystem as root/user/session/file.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Local{root: root}, nil
}

func (l *Local) EnsureNamespace(_ context.Context, userID string) error {
	if err := checkIDs(userID); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(l.root, userID), 0o755)
}

func (l *Local) RemoveNamespace(_ context.Context, userID string) error {
	if err := checkIDs(userID); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(l.root, userID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) Put(ctx context.Context, userID, sessionID, filename string, r io.Reader) (int64, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return 0, err
	}
	if err := checkFilename(filename); err != nil {
		return 0, err
	}

	dir := filepath.Join(l.root, userID, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	// 先写临时文件再 rename, 未完成的上传不会出现在列表里
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		return 0, err
	}
	committed = true
	return n, nil
}

func (l *Local) List(_ context.Context, userID, sessionID string) ([]Object, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(l.root, userID, sessionID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	objs := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isChunk(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		objs = append(objs, Object{Name: e.Name(), Size: info.Size()})
	}
	sortObjects(objs)
	return objs, nil
}

func (l *Local) Open(_ context.Context, userID, sessionID, filename string) (io.ReadCloser, int64, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return nil, 0, err
	}
	if err := checkFilename(filename); err != nil {
		return nil, 0, err
	}
	f, err := os.Open(filepath.Join(l.root, userID, sessionID, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (l *Local) DeleteSession(_ context.Context, userID, sessionID string) (bool, error) {
	if err := checkIDs(userID, sessionID); err != nil {
		return false, err
	}
	dir := filepath.Join(l.root, userID, sessionID)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return true, err
	}
	return true, nil
}

func (l *Local) Ping(_ context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("blob root %s is not a directory", l.root)
	}
	return nil
}
