package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash77492562/E-commerce-sub000/models"
)

// memoryStorage is an in-process ObjectStorage used by lifecycle tests.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failKey string // Put fails for keys containing this substring
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) Put(_ context.Context, key string, data []byte, _ string) (PutResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKey != "" && strings.Contains(key, m.failKey) {
		return PutResult{}, models.StorageError(errors.New("simulated upload failure"))
	}
	m.objects[key] = data
	return PutResult{Key: key, URL: "https://store.local/" + key}, nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://store.local/" + key + "?signed=1", nil
}

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func TestUploadBatch(t *testing.T) {
	owner := uuid.Must(uuid.NewV7())

	t.Run("assigns index by position with first main", func(t *testing.T) {
		store := newMemoryStorage()
		svc := NewImageLifecycleService(nil, store, nil)

		files := []uploadFile{
			{Name: "front.jpg", Data: []byte("a"), ContentType: "image/jpeg"},
			{Name: "side.jpg", Data: []byte("b"), ContentType: "image/jpeg"},
			{Name: "back.jpg", Data: []byte("c"), ContentType: "image/jpeg"},
		}
		rows, err := svc.uploadBatch(context.Background(), ProductImages, owner, files, 0, true)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		for i, row := range rows {
			assert.Equal(t, i, row.Idx)
			assert.Equal(t, owner, row.OwnerID)
			assert.NotEmpty(t, row.ImageKey)
			assert.Equal(t, i == 0, row.IsMain)
		}
		assert.Equal(t, 3, store.count())
	})

	t.Run("append-style batch never marks main", func(t *testing.T) {
		store := newMemoryStorage()
		svc := NewImageLifecycleService(nil, store, nil)

		files := []uploadFile{{Name: "extra.jpg", Data: []byte("x"), ContentType: "image/jpeg"}}
		rows, err := svc.uploadBatch(context.Background(), ProductImages, owner, files, 5, false)
		require.NoError(t, err)
		assert.Equal(t, 5, rows[0].Idx)
		assert.False(t, rows[0].IsMain)
	})

	t.Run("one failure fails the whole batch", func(t *testing.T) {
		store := newMemoryStorage()
		store.failKey = "broken"
		svc := NewImageLifecycleService(nil, store, nil)

		files := []uploadFile{
			{Name: "fine.jpg", Data: []byte("a"), ContentType: "image/jpeg"},
			{Name: "broken.jpg", Data: []byte("b"), ContentType: "image/jpeg"},
		}
		_, err := svc.uploadBatch(context.Background(), ProductImages, owner, files, 0, true)
		require.Error(t, err)

		appErr := models.AsAppError(err)
		assert.Equal(t, models.ErrCodeStorageError, appErr.Code)
	})
}

func TestApplyOrder(t *testing.T) {
	mk := func(idx int, main bool) models.Image {
		return models.Image{ID: uuid.Must(uuid.NewV7()), Idx: idx, IsMain: main, ImageKey: fmt.Sprintf("k%d", idx)}
	}

	t.Run("reassigns index by position and main at zero", func(t *testing.T) {
		a, b, c := mk(0, true), mk(1, false), mk(2, false)
		ordered, err := applyOrder([]models.Image{a, b, c}, []uuid.UUID{c.ID, a.ID, b.ID})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, []uuid.UUID{ordered[0].ID, ordered[1].ID, ordered[2].ID})
		mains := 0
		for pos, row := range ordered {
			assert.Equal(t, pos, row.Idx)
			if row.IsMain {
				mains++
				assert.Equal(t, 0, pos)
			}
		}
		assert.Equal(t, 1, mains)
	})

	t.Run("rejects incomplete ordering", func(t *testing.T) {
		a, b := mk(0, true), mk(1, false)
		_, err := applyOrder([]models.Image{a, b}, []uuid.UUID{a.ID})
		require.Error(t, err)
		assert.Equal(t, models.ErrCodeValidation, models.AsAppError(err).Code)
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		a, b := mk(0, true), mk(1, false)
		_, err := applyOrder([]models.Image{a, b}, []uuid.UUID{a.ID, uuid.Must(uuid.NewV7())})
		require.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		a, b := mk(0, true), mk(1, false)
		_, err := applyOrder([]models.Image{a, b}, []uuid.UUID{a.ID, a.ID})
		require.Error(t, err)
		_ = b
	})
}

func TestAppendMarksMain(t *testing.T) {
	t.Run("empty owner gets a main through append", func(t *testing.T) {
		assert.True(t, appendMarksMain(0))
	})

	t.Run("owner with live images never does", func(t *testing.T) {
		assert.False(t, appendMarksMain(1))
		assert.False(t, appendMarksMain(7))
	})
}

func TestNextMainAfterDelete(t *testing.T) {
	mk := func(idx int, key string) models.Image {
		return models.Image{ID: uuid.Must(uuid.NewV7()), Idx: idx, ImageKey: key}
	}

	t.Run("promotes remaining lowest index", func(t *testing.T) {
		// Gallery of three: main at idx 0 was deleted, idx 1 and 2 remain
		b, c := mk(1, "k1"), mk(2, "k2")
		id, ok := nextMainAfterDelete([]models.Image{c, b})
		require.True(t, ok)
		assert.Equal(t, b.ID, id)
	})

	t.Run("skips soft-deleted rows", func(t *testing.T) {
		b, c := mk(1, ""), mk(2, "k2")
		id, ok := nextMainAfterDelete([]models.Image{b, c})
		require.True(t, ok)
		assert.Equal(t, c.ID, id)
	})

	t.Run("no live rows means no promotion", func(t *testing.T) {
		_, ok := nextMainAfterDelete([]models.Image{mk(0, ""), mk(1, "")})
		assert.False(t, ok)
	})

	t.Run("empty gallery", func(t *testing.T) {
		_, ok := nextMainAfterDelete(nil)
		assert.False(t, ok)
	})
}
