// Package blob stores recording chunks under user/session namespaces.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/util/validate"
)

const ChunkExt = ".mov"

var (
	ErrNotFound    = errors.New("blob: not found")
	ErrInvalidPath = errors.New("blob: invalid path segment")

	filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]{0,254}$`)
)

type Object struct {
	Name string
	Size int64
}

// Store is the chunk storage collaborator. Put is atomic: a chunk is either
// listed complete or not listed at all.
type Store interface {
	// EnsureNamespace creates the user namespace; it is idempotent.
	EnsureNamespace(ctx context.Context, userID string) error
	// RemoveNamespace removes the user namespace only if it is empty.
	RemoveNamespace(ctx context.Context, userID string) error
	Put(ctx context.Context, userID, sessionID, filename string, r io.Reader) (int64, error)
	// List returns completed chunks sorted by name, or ErrNotFound if the
	// session namespace does not exist. An existing empty session yields an
	// empty slice.
	List(ctx context.Context, userID, sessionID string) ([]Object, error)
	Open(ctx context.Context, userID, sessionID, filename string) (io.ReadCloser, int64, error)
	// DeleteSession removes every object of the session and reports whether
	// anything existed.
	DeleteSession(ctx context.Context, userID, sessionID string) (bool, error)
	Ping(ctx context.Context) error
}

// Presigner is implemented by stores that can hand out direct download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, userID, sessionID, filename string, ttl time.Duration) (string, error)
}

// New builds the store selected by conf.Driver.
func New(ctx context.Context, conf config.BlobConf) (Store, error) {
	switch conf.Driver {
	case "local":
		return NewLocal(conf.Root)
	case "s3":
		return NewS3(ctx, conf.S3)
	default:
		return nil, fmt.Errorf("unsupported blob driver %q", conf.Driver)
	}
}

func checkIDs(ids ...string) error {
	for _, id := range ids {
		if !validate.IsStorageID(id) {
			return fmt.Errorf("%w: %q", ErrInvalidPath, id)
		}
	}
	return nil
}

func checkFilename(name string) error {
	if !filenamePattern.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return nil
}

func isChunk(name string) bool {
	return strings.HasSuffix(name, ChunkExt) && !strings.HasPrefix(name, ".")
}

func sortObjects(objs []Object) {
	sort.Slice(objs, func(i, j int) bool { return objs[i].Name < objs[j].Name })
}
