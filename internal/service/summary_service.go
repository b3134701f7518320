package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studylog/backend/internal/logger"
	"studylog/backend/internal/model"
	"studylog/backend/internal/store"
)

// SummaryService appends study summaries to the stored collection.
type SummaryService interface {
	// Add builds an entry from payload and appends it.
	// It fails with ErrConfig before touching the store when the service has no store.
	Add(ctx context.Context, payload map[string]any) (model.SummaryEntry, error)
	// Append reads the collection, appends entry and writes it back with the
	// version obtained at read time. A concurrent change yields ErrConflict.
	Append(ctx context.Context, entry model.SummaryEntry) error
}

type SummaryOptions struct {
	// Path of the collection file inside the store.
	Path string
	// Unconfigured explains why no store is available. Add reports it as ErrConfig.
	Unconfigured error
	// Now defaults to time.Now.
	Now func() time.Time
}

type summaryService struct {
	store        store.VersionedFileStore
	path         string
	unconfigured error
	now          func() time.Time
}

func NewSummaryService(st store.VersionedFileStore, opts SummaryOptions) SummaryService {
	svc := &summaryService{
		store:        st,
		path:         opts.Path,
		unconfigured: opts.Unconfigured,
		now:          opts.Now,
	}
	if svc.path == "" {
		svc.path = "study.json"
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.store == nil && svc.unconfigured == nil {
		svc.unconfigured = errors.New("no store configured")
	}
	return svc
}

func (s *summaryService) Add(ctx context.Context, payload map[string]any) (model.SummaryEntry, error) {
	if s.unconfigured != nil {
		return model.SummaryEntry{}, fmt.Errorf("%w: %w", ErrConfig, s.unconfigured)
	}
	entry := BuildEntry(payload, s.now())
	if err := s.Append(ctx, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

func (s *summaryService) Append(ctx context.Context, entry model.SummaryEntry) error {
	if s.store == nil {
		return fmt.Errorf("%w: %w", ErrConfig, s.unconfigured)
	}

	file, err := s.store.Read(ctx, s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	collection, err := model.DecodeCollection(file.Content)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	next, err := collection.Append(entry)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	content, err := next.Encode()
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	message := "Add summary " + entry.Date
	if err := s.store.Write(ctx, s.path, content, file.Version, message); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	logger.Info("summary appended",
		"module", "service",
		"action", "append",
		"resource", "summary",
		"result", "ok",
		"path", s.path,
		"date", entry.Date,
		"entries", len(next),
	)
	return nil
}
