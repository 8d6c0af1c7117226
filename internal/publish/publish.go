package publish

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"sparkpress/internal/logging"
	"sparkpress/internal/post"
	"sparkpress/internal/postindex"
	"sparkpress/internal/services"
	"sparkpress/internal/slug"
)

const lockFileName = ".sparkpress.lock"

// Result reports where a post landed, or where its duplicate already lives.
type Result struct {
	Path          string
	Filename      string
	AlreadyExists bool
}

// Publisher writes generated posts into the content directory exactly once
// per video. Writes are serialized through a directory lock and performed
// via temp-file rename so readers never observe a partial document.
type Publisher struct {
	contentDir string
	index      *postindex.Store
	lock       *flock.Flock
	log        *slog.Logger
}

// New constructs a publisher for contentDir. The index is optional; without
// it every duplicate check falls through to the directory scan.
func New(contentDir string, index *postindex.Store, logger *slog.Logger) *Publisher {
	return &Publisher{
		contentDir: contentDir,
		index:      index,
		lock:       flock.New(filepath.Join(contentDir, lockFileName)),
		log:        logging.OrNop(logger),
	}
}

// Publish writes the post unless the video already has a document. The
// returned Result carries the existing path with AlreadyExists set when the
// duplicate check hits.
func (p *Publisher) Publish(ctx context.Context, doc post.GeneratedPost) (Result, error) {
	if doc.ExternalID == "" {
		return Result{}, services.Wrap(services.ErrPublication, "publish", "validate", "video id required", nil)
	}
	if doc.Filename == "" {
		return Result{}, services.Wrap(services.ErrPublication, "publish", "validate", "filename required", nil)
	}
	if err := os.MkdirAll(p.contentDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrPublication, "publish", "ensure content dir", p.contentDir, err)
	}

	if err := p.lock.Lock(); err != nil {
		return Result{}, services.Wrap(services.ErrPublication, "publish", "acquire lock", p.contentDir, err)
	}
	defer func() {
		if err := p.lock.Unlock(); err != nil {
			p.log.Warn("failed to release content lock", "error", err)
		}
	}()

	if existing, found, err := p.FindExisting(ctx, doc.ExternalID); err != nil {
		return Result{}, err
	} else if found {
		p.log.Info("video already published, skipping",
			"video_id", doc.ExternalID, "path", existing)
		return Result{Path: existing, Filename: filepath.Base(existing), AlreadyExists: true}, nil
	}

	filename := slug.ResolveCollision(p.contentDir, doc.Filename)
	target := filepath.Join(p.contentDir, filename)
	if err := writeAtomic(target, []byte(doc.Document())); err != nil {
		return Result{}, services.Wrap(services.ErrPublication, "publish", "write document", target, err)
	}

	if p.index != nil {
		rec := postindex.Record{
			VideoID:   doc.ExternalID,
			Filename:  filename,
			Title:     doc.Title,
			Language:  doc.Language,
			Category:  doc.Category,
			CreatedAt: doc.Date,
		}
		if err := p.index.Record(ctx, rec); err != nil {
			// Index is advisory; the document on disk is what counts.
			p.log.Warn("failed to index published post",
				"video_id", doc.ExternalID, "error", err)
		}
	}

	p.log.Info("post published",
		"video_id", doc.ExternalID, "path", target, "title", doc.Title)
	return Result{Path: target, Filename: filename}, nil
}

// FindExisting reports whether a document for videoID is already present.
// The index answers first; a stale index entry whose file is gone is evicted
// and the directory scan decides.
func (p *Publisher) FindExisting(ctx context.Context, videoID string) (string, bool, error) {
	if p.index != nil {
		filename, ok, err := p.index.Lookup(ctx, videoID)
		if err != nil {
			p.log.Warn("index lookup failed, falling back to scan", "error", err)
		} else if ok {
			path := filepath.Join(p.contentDir, filename)
			if _, statErr := os.Stat(path); statErr == nil {
				return path, true, nil
			}
			if err := p.index.Forget(ctx, videoID); err != nil {
				p.log.Warn("failed to evict stale index entry", "video_id", videoID, "error", err)
			}
		}
	}
	return p.scanForVideo(videoID)
}

// scanForVideo walks the content directory looking for a front-matter line
// claiming the video ID.
func (p *Publisher) scanForVideo(videoID string) (string, bool, error) {
	entries, err := os.ReadDir(p.contentDir)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, services.Wrap(services.ErrPublication, "publish", "scan content dir", p.contentDir, err)
	}
	needle := "youtube_id: " + videoID
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(p.contentDir, entry.Name())
		claimed, err := fileClaimsVideo(path, needle)
		if err != nil {
			p.log.Warn("skipping unreadable post during scan", "path", path, "error", err)
			continue
		}
		if claimed {
			return path, true, nil
		}
	}
	return "", false, nil
}

func fileClaimsVideo(path, needle string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	fences := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == post.FenceMarker {
			fences++
			if fences == 2 {
				break
			}
			continue
		}
		if line == needle {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// writeAtomic writes data to a temp file in the target's directory and
// renames it into place.
func writeAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".post-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
