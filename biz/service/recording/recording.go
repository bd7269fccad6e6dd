// Package recording keeps the session registry and the chunks stored for it.
package recording

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/downloadlink"
	"righttorecord/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	labelLayout    = "Recording 2006-01-02 15:04"
	filenameLayout = "20060102_150405"
	// MaxChunkIndex keeps the index inside the zero padded width.
	MaxChunkIndex = 999_999_999
)

var chunkIndexPattern = regexp.MustCompile(`^chunk_(\d+)`)

type Service struct {
	sessions repo.SessionRepository
	blobs    blob.Store
	signer   *downloadlink.Signer
	clock    clock.Clock

	publicURL string
	linkTTL   time.Duration
}

func New(sessions repo.SessionRepository, blobs blob.Store, signer *downloadlink.Signer,
	clk clock.Clock, publicURL string, linkTTL time.Duration) *Service {
	return &Service{
		sessions:  sessions,
		blobs:     blobs,
		signer:    signer,
		clock:     clk,
		publicURL: strings.TrimRight(publicURL, "/"),
		linkTTL:   linkTTL,
	}
}

func ChunkFilename(index int, at time.Time) string {
	return fmt.Sprintf("chunk_%03d_%s.mov", index, at.Format(filenameLayout))
}

func SessionLabel(createdAt time.Time) string {
	return createdAt.Format(labelLayout)
}

func checkSessionID(sessionID string) errs.Error {
	if !validate.IsStorageID(sessionID) {
		return errs.ParamError.SetMsg("invalid session_id")
	}
	return nil
}

// RecordChunk creates the session on first use, stores the chunk and raises
// the session chunk count. Chunks may arrive out of order or with gaps.
func (s *Service) RecordChunk(ctx context.Context, userID, sessionID string, index int, r io.Reader) (*domain.ChunkInfo, errs.Error) {
	if bizErr := checkSessionID(sessionID); bizErr != nil {
		return nil, bizErr
	}
	if index < 0 || index > MaxChunkIndex {
		return nil, errs.ParamError.SetMsg("invalid chunk_number")
	}

	now := s.clock.Now()
	if _, err := s.sessions.CreateOrGet(ctx, userID, sessionID, now); err != nil {
		hlog.CtxErrorf(ctx, "create session %s/%s err: %v", userID, sessionID, err)
		return nil, errs.ServerError
	}

	filename := ChunkFilename(index, now)
	size, err := s.blobs.Put(ctx, userID, sessionID, filename, r)
	if err != nil {
		hlog.CtxErrorf(ctx, "store chunk %s/%s/%s err: %v", userID, sessionID, filename, err)
		return nil, errs.ServerError
	}

	if err := s.sessions.RaiseChunkCount(ctx, userID, sessionID, index); err != nil {
		// 文件已写入, 列表以文件为准
		hlog.CtxWarnf(ctx, "raise chunk count %s/%s err: %v", userID, sessionID, err)
	}
	hlog.CtxInfof(ctx, "chunk %s stored for %s/%s, %d bytes", filename, userID, sessionID, size)
	return &domain.ChunkInfo{Filename: filename, Size: size}, nil
}

// ListSessions is newest first. Chunk counts come from the blob store, not
// from the stored counter.
func (s *Service) ListSessions(ctx context.Context, userID string) ([]*domain.SessionSummary, errs.Error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "list sessions of %s err: %v", userID, err)
		return nil, errs.ServerError
	}

	out := make([]*domain.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		objs, err := s.blobs.List(ctx, userID, sess.SessionID)
		if err != nil && !errors.Is(err, blob.ErrNotFound) {
			hlog.CtxErrorf(ctx, "list chunks %s/%s err: %v", userID, sess.SessionID, err)
			return nil, errs.ServerError
		}
		out = append(out, &domain.SessionSummary{
			SessionID:  sess.SessionID,
			Label:      SessionLabel(sess.CreatedAt),
			ChunkCount: len(objs),
			CreatedAt:  sess.CreatedAt,
		})
	}
	return out, nil
}

// PrepareDownload returns the stored chunks in capture order with a link
// for each.
func (s *Service) PrepareDownload(ctx context.Context, userID, sessionID string) ([]*domain.ChunkLocator, errs.Error) {
	if bizErr := checkSessionID(sessionID); bizErr != nil {
		return nil, bizErr
	}
	objs, err := s.blobs.List(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, errs.NotFound.SetMsg("session not found")
		}
		hlog.CtxErrorf(ctx, "list chunks %s/%s err: %v", userID, sessionID, err)
		return nil, errs.ServerError
	}
	SortChunks(objs)

	out := make([]*domain.ChunkLocator, 0, len(objs))
	for i, o := range objs {
		link, err := s.chunkURL(ctx, userID, sessionID, o.Name)
		if err != nil {
			hlog.CtxErrorf(ctx, "build link for %s err: %v", o.Name, err)
			return nil, errs.ServerError
		}
		out = append(out, &domain.ChunkLocator{Filename: o.Name, Order: i + 1, Size: o.Size, URL: link})
	}
	return out, nil
}

func (s *Service) chunkURL(ctx context.Context, userID, sessionID, filename string) (string, error) {
	if p, ok := s.blobs.(blob.Presigner); ok {
		return p.PresignGet(ctx, userID, sessionID, filename, s.linkTTL)
	}
	token, err := s.signer.Sign(userID, sessionID, filename)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/download_chunk/%s/%s/%s?token=%s", s.publicURL,
		url.PathEscape(userID), url.PathEscape(sessionID), url.PathEscape(filename), url.QueryEscape(token)), nil
}

// OpenChunk checks the link token before opening the object.
func (s *Service) OpenChunk(ctx context.Context, userID, sessionID, filename, token string) (io.ReadCloser, int64, errs.Error) {
	if err := s.signer.Verify(token, userID, sessionID, filename); err != nil {
		hlog.CtxInfof(ctx, "reject download token for %s/%s/%s: %v", userID, sessionID, filename, err)
		return nil, 0, errs.Unauthorized.SetMsg("invalid or expired download link")
	}
	rc, size, err := s.blobs.Open(ctx, userID, sessionID, filename)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidPath) {
			return nil, 0, errs.NotFound.SetMsg("video chunk not found")
		}
		hlog.CtxErrorf(ctx, "open chunk %s/%s/%s err: %v", userID, sessionID, filename, err)
		return nil, 0, errs.ServerError
	}
	return rc, size, nil
}

// DeleteSession removes the files first and the row second, so a failed
// file removal leaves the session in place for a retry.
func (s *Service) DeleteSession(ctx context.Context, userID, sessionID string) errs.Error {
	if bizErr := checkSessionID(sessionID); bizErr != nil {
		return bizErr
	}

	sess, err := s.sessions.Find(ctx, userID, sessionID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find session %s/%s err: %v", userID, sessionID, err)
		return errs.ServerError
	}

	existed, err := s.blobs.DeleteSession(ctx, userID, sessionID)
	if err != nil {
		hlog.CtxErrorf(ctx, "delete chunks %s/%s err: %v", userID, sessionID, err)
		return errs.ServerError
	}
	if sess == nil {
		if !existed {
			return errs.NotFound.SetMsg("session not found")
		}
		return nil
	}

	if _, err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		hlog.CtxErrorf(ctx, "delete session row %s/%s err: %v", userID, sessionID, err)
		return errs.ServerError
	}
	hlog.CtxInfof(ctx, "session %s/%s deleted", userID, sessionID)
	return nil
}

// SortChunks orders by the parsed chunk index, then by name. Names without an
// index sort after indexed ones.
func SortChunks(objs []blob.Object) {
	sort.SliceStable(objs, func(i, j int) bool {
		ii, iok := chunkIndex(objs[i].Name)
		ji, jok := chunkIndex(objs[j].Name)
		if iok != jok {
			return iok
		}
		if iok && ii != ji {
			return ii < ji
		}
		return objs[i].Name < objs[j].Name
	})
}

func chunkIndex(name string) (int, bool) {
	m := chunkIndexPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
