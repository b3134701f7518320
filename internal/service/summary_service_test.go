package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studylog/backend/internal/model"
	"studylog/backend/internal/service"
	"studylog/backend/internal/store"
	"studylog/backend/internal/store/mock"
)

const seedCollection = `[
    {
        "date": "2025-11-13",
        "date_display": "November 13, 2025",
        "speaker": "B",
        "portion": "Ch 1",
        "title": "First",
        "summary": "one",
        "members": "4"
    }
]`

func clock() time.Time { return fixedNow }

func newMemoryService(t *testing.T, seed string) (service.SummaryService, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	mem.Put("study.json", []byte(seed))
	svc := service.NewSummaryService(mem, service.SummaryOptions{Path: "study.json", Now: clock})
	return svc, mem
}

func storedEntries(t *testing.T, mem *store.MemoryStore) []model.SummaryEntry {
	t.Helper()
	content, ok := mem.Content("study.json")
	require.True(t, ok)
	collection, err := model.DecodeCollection(content)
	require.NoError(t, err)
	entries, err := collection.Entries()
	require.NoError(t, err)
	return entries
}

func TestSummaryService_Add_AppendsEntry(t *testing.T) {
	svc, mem := newMemoryService(t, seedCollection)
	before := storedEntries(t, mem)

	entry, err := svc.Add(context.Background(), map[string]any{"speaker": "A", "title": "T"})
	require.NoError(t, err)
	require.Equal(t, "2026-10-14", entry.Date)

	after := storedEntries(t, mem)
	require.Len(t, after, len(before)+1)
	require.Equal(t, before, after[:len(before)])
	require.Equal(t, entry, after[len(after)-1])
	require.Equal(t, "Unknown Portion", after[1].Portion)
	require.Equal(t, "N/A", after[1].Members)

	commits := mem.Commits()
	require.Len(t, commits, 1)
	require.Equal(t, "Add summary 2026-10-14", commits[0].Message)
}

func TestSummaryService_Append_SequentialAppendsKeepOrder(t *testing.T) {
	svc, mem := newMemoryService(t, "[]")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		entry := service.BuildEntry(map[string]any{"title": fmt.Sprintf("T%d", i)}, fixedNow)
		require.NoError(t, svc.Append(ctx, entry))
	}

	entries := storedEntries(t, mem)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		require.Equal(t, fmt.Sprintf("T%d", i+1), entry.Title)
	}
}

func TestSummaryService_Append_WritesIndentedJSON(t *testing.T) {
	svc, mem := newMemoryService(t, "[]")

	require.NoError(t, svc.Append(context.Background(), service.BuildEntry(nil, fixedNow)))

	content, _ := mem.Content("study.json")
	require.Contains(t, string(content), "\n    {\n        \"date\": \"2026-10-14\",\n")
}

// racingStore lets another writer update the file between Read and Write.
type racingStore struct {
	*store.MemoryStore
	concurrent []byte
}

func (r *racingStore) Read(ctx context.Context, path string) (store.File, error) {
	file, err := r.MemoryStore.Read(ctx, path)
	if err == nil && r.concurrent != nil {
		r.MemoryStore.Put(path, r.concurrent)
		r.concurrent = nil
	}
	return file, err
}

func TestSummaryService_Append_ConcurrentWriteConflicts(t *testing.T) {
	concurrent := []byte(`[{"date":"2025-11-14"}]`)
	racing := &racingStore{MemoryStore: store.NewMemoryStore(), concurrent: concurrent}
	racing.Put("study.json", []byte(seedCollection))
	svc := service.NewSummaryService(racing, service.SummaryOptions{Now: clock})

	_, err := svc.Add(context.Background(), map[string]any{"title": "late"})
	require.ErrorIs(t, err, service.ErrConflict)
	require.ErrorIs(t, err, store.ErrConflict)

	content, _ := racing.Content("study.json")
	require.Equal(t, string(concurrent), string(content))
	require.Empty(t, racing.Commits())
}

func TestSummaryService_Append_CorruptStore(t *testing.T) {
	for _, seed := range []string{"", "null", `{"date":"x"}`, "[{],"} {
		svc, mem := newMemoryService(t, seed)

		err := svc.Append(context.Background(), service.BuildEntry(nil, fixedNow))
		require.ErrorIs(t, err, service.ErrCorruptStore, "seed %q", seed)

		content, _ := mem.Content("study.json")
		require.Equal(t, seed, string(content))
	}
}

func TestSummaryService_Append_MissingFile(t *testing.T) {
	svc := service.NewSummaryService(store.NewMemoryStore(), service.SummaryOptions{Now: clock})

	err := svc.Append(context.Background(), service.BuildEntry(nil, fixedNow))
	require.ErrorIs(t, err, service.ErrStoreUnavailable)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSummaryService_Append_ReadErrors(t *testing.T) {
	for _, readErr := range []error{store.ErrNotFound, store.ErrUnauthorized, store.ErrUnavailable} {
		t.Run(readErr.Error(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mock.NewMockVersionedFileStore(ctrl)
			mockStore.EXPECT().Read(gomock.Any(), "study.json").Return(store.File{}, fmt.Errorf("%w: boom", readErr))

			svc := service.NewSummaryService(mockStore, service.SummaryOptions{Now: clock})
			err := svc.Append(context.Background(), service.BuildEntry(nil, fixedNow))
			require.ErrorIs(t, err, service.ErrStoreUnavailable)
			require.ErrorIs(t, err, readErr)
			require.Contains(t, err.Error(), "boom")
		})
	}
}

func TestSummaryService_Append_WritesWithReadVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockVersionedFileStore(ctrl)
	mockStore.EXPECT().Read(gomock.Any(), "log/study.json").Return(store.File{
		Path:    "log/study.json",
		Content: []byte("[]"),
		Version: "sha-1",
	}, nil)

	var written []byte
	mockStore.EXPECT().
		Write(gomock.Any(), "log/study.json", gomock.Any(), "sha-1", "Add summary 2025-11-20").
		DoAndReturn(func(_ context.Context, _ string, content []byte, _, _ string) error {
			written = content
			return nil
		})

	svc := service.NewSummaryService(mockStore, service.SummaryOptions{Path: "log/study.json", Now: clock})
	_, err := svc.Add(context.Background(), map[string]any{"date": "2025-11-20"})
	require.NoError(t, err)

	collection, err := model.DecodeCollection(written)
	require.NoError(t, err)
	require.Len(t, collection, 1)
}

func TestSummaryService_Append_WriteErrors(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
		want     error
	}{
		{name: "conflict", writeErr: store.ErrConflict, want: service.ErrConflict},
		{name: "unavailable", writeErr: store.ErrUnavailable, want: service.ErrStoreUnavailable},
		{name: "unauthorized", writeErr: store.ErrUnauthorized, want: service.ErrStoreUnavailable},
		{name: "unclassified", writeErr: errors.New("socket closed"), want: service.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mock.NewMockVersionedFileStore(ctrl)
			mockStore.EXPECT().Read(gomock.Any(), "study.json").Return(store.File{Content: []byte("[]"), Version: "v1"}, nil)
			mockStore.EXPECT().Write(gomock.Any(), "study.json", gomock.Any(), "v1", gomock.Any()).Return(tt.writeErr).Times(1)

			svc := service.NewSummaryService(mockStore, service.SummaryOptions{Now: clock})
			err := svc.Append(context.Background(), service.BuildEntry(nil, fixedNow))
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, tt.writeErr)
		})
	}
}

func TestSummaryService_Add_UnconfiguredSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockVersionedFileStore(ctrl)
	reason := errors.New("GITHUB_PAT is not set")
	svc := service.NewSummaryService(mockStore, service.SummaryOptions{Unconfigured: reason})

	_, err := svc.Add(context.Background(), map[string]any{"title": "T"})
	require.ErrorIs(t, err, service.ErrConfig)
	require.ErrorIs(t, err, reason)
	require.Contains(t, err.Error(), "GITHUB_PAT is not set")
}

func TestSummaryService_Add_NilStore(t *testing.T) {
	svc := service.NewSummaryService(nil, service.SummaryOptions{})

	_, err := svc.Add(context.Background(), map[string]any{})
	require.ErrorIs(t, err, service.ErrConfig)

	err = svc.Append(context.Background(), model.SummaryEntry{})
	require.ErrorIs(t, err, service.ErrConfig)
}
