package services

import (
	"context"
	"io"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yash77492562/E-commerce-sub000/models"
)

// ImageLifecycleService keeps {idx, is_main, image_key} consistent for an
// owner's image set across upload, append, reorder, replace and delete.
// Object-store writes always happen before row writes, so a storage failure
// never leaves rows pointing at blobs that were meant to be replaced, and a
// failed multi-upload fails the whole batch before any row exists.
type ImageLifecycleService struct {
	db    *gorm.DB
	store ObjectStorage
	proc  ImageProcessor
}

func NewImageLifecycleService(db *gorm.DB, store ObjectStorage, proc ImageProcessor) *ImageLifecycleService {
	if proc == nil {
		proc = PassthroughProcessor{}
	}
	return &ImageLifecycleService{db: db, store: store, proc: proc}
}

// uploadFile is one file pulled out of a multipart form.
type uploadFile struct {
	Name        string
	Data        []byte
	ContentType string
}

func readMultipartFiles(files []*multipart.FileHeader) ([]uploadFile, error) {
	out := make([]uploadFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, models.ValidationError("could not read uploaded file " + fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, models.ValidationError("could not read uploaded file " + fh.Filename)
		}
		out = append(out, uploadFile{
			Name:        fh.Filename,
			Data:        data,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return out, nil
}

// uploadBatch uploads every file concurrently and returns the prepared rows
// in input order, unpersisted. Any single failure fails the whole batch.
// When markMain is true the row at startIdx becomes main.
func (s *ImageLifecycleService) uploadBatch(ctx context.Context, set ImageSet, ownerID uuid.UUID, files []uploadFile, startIdx int, markMain bool) ([]models.Image, error) {
	rows := make([]models.Image, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			data, contentType, err := s.proc.Process(gctx, file.Data, file.ContentType)
			if err != nil {
				return models.StorageError(err)
			}

			key := BuildImageKey(set, ownerID, file.Name)
			res, err := s.store.Put(gctx, key, data, contentType)
			if err != nil {
				return err
			}

			rows[i] = models.Image{
				ID:       uuid.Must(uuid.NewV7()),
				OwnerID:  ownerID,
				Idx:      startIdx + i,
				ImageKey: res.Key,
				ImageURL: res.URL,
				IsMain:   markMain && i == 0,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// UploadNew uploads a fresh image set for an owner that has no images yet:
// idx by array position from 0, first file main. Rows are returned
// unpersisted so the caller can write them in the same transaction as the
// owning record.
func (s *ImageLifecycleService) UploadNew(ctx context.Context, set ImageSet, ownerID uuid.UUID, files []*multipart.FileHeader) ([]models.Image, error) {
	if len(files) == 0 {
		return nil, models.ValidationError("at least one image file is required")
	}
	batch, err := readMultipartFiles(files)
	if err != nil {
		return nil, err
	}
	return s.uploadBatch(ctx, set, ownerID, batch, 0, true)
}

// InsertRows persists prepared rows on the given transaction handle.
func (s *ImageLifecycleService) InsertRows(tx *gorm.DB, set ImageSet, rows []models.Image) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Table(set.Table).Create(&rows).Error; err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// AppendImages uploads new files at idx = startIndex, startIndex+1, ... and
// persists the rows. The first new image becomes main only when the owner
// currently has zero live images; existing galleries never get a new main
// through append.
func (s *ImageLifecycleService) AppendImages(ctx context.Context, set ImageSet, ownerID uuid.UUID, startIndex int, files []*multipart.FileHeader) ([]models.Image, error) {
	if len(files) == 0 {
		return nil, models.ValidationError("at least one image file is required")
	}
	if startIndex < 0 {
		return nil, models.ValidationError("last_index must not be negative")
	}

	live, err := s.liveCount(ctx, set, ownerID)
	if err != nil {
		return nil, err
	}

	batch, err := readMultipartFiles(files)
	if err != nil {
		return nil, err
	}

	rows, err := s.uploadBatch(ctx, set, ownerID, batch, startIndex, appendMarksMain(live))
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.InsertRows(tx, set, rows)
	})
	if err != nil {
		return nil, models.AsAppError(err)
	}

	return s.ListImages(ctx, set, ownerID)
}

// Reorder rewrites every image row for the owner in one transaction: idx by
// position in orderedIDs, is_main on position 0. Reordering and main-image
// designation are the same operation. The object store is never touched.
func (s *ImageLifecycleService) Reorder(ctx context.Context, set ImageSet, ownerID uuid.UUID, orderedIDs []uuid.UUID) ([]models.Image, error) {
	var current []models.Image
	if err := s.db.WithContext(ctx).Table(set.Table).
		Where("owner_id = ?", ownerID).
		Find(&current).Error; err != nil {
		return nil, models.PersistenceError(err)
	}
	if len(current) == 0 {
		return nil, models.ValidationError("no images to reorder")
	}

	ordered, err := applyOrder(current, orderedIDs)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range ordered {
			if err := tx.Table(set.Table).
				Where("id = ?", row.ID).
				Updates(map[string]interface{}{"idx": row.Idx, "is_main": row.IsMain}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, models.PersistenceError(err)
	}

	return s.ListImages(ctx, set, ownerID)
}

// ReplaceSingle swaps the blob behind one slot (home/about semantics): the
// old blob is deleted only when the slot has one, the new blob is uploaded,
// and key/url are rewritten in place. idx and is_main are untouched.
func (s *ImageLifecycleService) ReplaceSingle(ctx context.Context, set ImageSet, imageID uuid.UUID, file *multipart.FileHeader) (*models.Image, error) {
	row, err := s.findImage(ctx, set, imageID)
	if err != nil {
		return nil, err
	}

	if row.Live() {
		if err := s.store.Delete(ctx, row.ImageKey); err != nil {
			return nil, err
		}
	}

	batch, err := readMultipartFiles([]*multipart.FileHeader{file})
	if err != nil {
		return nil, err
	}
	data, contentType, err := s.proc.Process(ctx, batch[0].Data, batch[0].ContentType)
	if err != nil {
		return nil, models.StorageError(err)
	}

	key := BuildImageKey(set, row.OwnerID, batch[0].Name)
	res, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table(set.Table).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{"image_key": res.Key, "image_url": res.URL}).Error; err != nil {
		return nil, models.PersistenceError(err)
	}

	row.ImageKey = res.Key
	row.ImageURL = res.URL
	return row, nil
}

// SoftDelete removes the blob but keeps the row: key/url become empty
// strings so the slot stays addressable for re-upload.
func (s *ImageLifecycleService) SoftDelete(ctx context.Context, set ImageSet, imageID uuid.UUID) (*models.Image, error) {
	row, err := s.findImage(ctx, set, imageID)
	if err != nil {
		return nil, err
	}

	if row.Live() {
		if err := s.store.Delete(ctx, row.ImageKey); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Table(set.Table).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{"image_key": "", "image_url": ""}).Error; err != nil {
		return nil, models.PersistenceError(err)
	}

	row.ImageKey = ""
	row.ImageURL = ""
	return row, nil
}

// HardDeleteFromGallery deletes blob and row. When the deleted row was
// main, the remaining row with the lowest idx is promoted; otherwise the
// main flag is untouched. Indices are not compacted — the caller re-submits
// a reorder when it wants them contiguous.
func (s *ImageLifecycleService) HardDeleteFromGallery(ctx context.Context, set ImageSet, ownerID, imageID uuid.UUID) ([]models.Image, error) {
	row, err := s.findImage(ctx, set, imageID)
	if err != nil {
		return nil, err
	}
	if row.OwnerID != ownerID {
		return nil, models.ValidationError("image does not belong to this product")
	}

	// Storage first: a storage failure aborts before any row is removed.
	if row.Live() {
		if err := s.store.Delete(ctx, row.ImageKey); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(set.Table).Where("id = ?", row.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if !row.IsMain {
			return nil
		}

		var remaining []models.Image
		if err := tx.Table(set.Table).
			Where("owner_id = ?", ownerID).
			Order("idx asc").
			Find(&remaining).Error; err != nil {
			return err
		}
		promoteID, ok := nextMainAfterDelete(remaining)
		if !ok {
			return nil
		}
		return tx.Table(set.Table).
			Where("id = ?", promoteID).
			Update("is_main", true).Error
	})
	if err != nil {
		return nil, models.PersistenceError(err)
	}

	return s.ListImages(ctx, set, ownerID)
}

// ListImages returns the owner's rows ordered by idx with signed URLs
// regenerated for every live row. A presign failure falls back to the
// cached URL rather than failing the read.
func (s *ImageLifecycleService) ListImages(ctx context.Context, set ImageSet, ownerID uuid.UUID) ([]models.Image, error) {
	var rows []models.Image
	if err := s.db.WithContext(ctx).Table(set.Table).
		Where("owner_id = ?", ownerID).
		Order("idx asc").
		Find(&rows).Error; err != nil {
		return nil, models.PersistenceError(err)
	}

	for i := range rows {
		if !rows[i].Live() {
			continue
		}
		signed, err := s.store.SignedURL(ctx, rows[i].ImageKey, SignedURLTTL)
		if err != nil {
			log.Printf("[ERROR] presign failed for %s: %v", rows[i].ImageKey, err)
			continue
		}
		rows[i].ImageURL = signed
	}
	return rows, nil
}

// DeleteBlob removes one blob by key without touching rows. Used by the
// product delete flow, which clears storage before its row transaction.
func (s *ImageLifecycleService) DeleteBlob(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func (s *ImageLifecycleService) findImage(ctx context.Context, set ImageSet, imageID uuid.UUID) (*models.Image, error) {
	if imageID == uuid.Nil {
		return nil, models.ValidationError("image id is required")
	}
	var row models.Image
	err := s.db.WithContext(ctx).Table(set.Table).Where("id = ?", imageID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, models.ValidationError("image not found")
	}
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	return &row, nil
}

func (s *ImageLifecycleService) liveCount(ctx context.Context, set ImageSet, ownerID uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table(set.Table).
		Where("owner_id = ? AND image_key <> ''", ownerID).
		Count(&n).Error; err != nil {
		return 0, models.PersistenceError(err)
	}
	return n, nil
}

// ════════════════════════════════════════════════════════════
// Pure planners
// ════════════════════════════════════════════════════════════

// applyOrder maps the caller-supplied full ordering onto the current rows:
// idx by position, is_main on position 0. The ordering must name every
// current row exactly once.
func applyOrder(current []models.Image, orderedIDs []uuid.UUID) ([]models.Image, error) {
	if len(orderedIDs) != len(current) {
		return nil, models.ValidationError("reorder must include every image exactly once")
	}

	byID := make(map[uuid.UUID]models.Image, len(current))
	for _, row := range current {
		byID[row.ID] = row
	}

	out := make([]models.Image, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		row, ok := byID[id]
		if !ok {
			return nil, models.ValidationError("unknown image id in reorder list")
		}
		delete(byID, id)
		row.Idx = pos
		row.IsMain = pos == 0
		out = append(out, row)
	}
	return out, nil
}

// appendMarksMain decides whether an appended batch carries the main flag:
// only when the owner has no live images. Existing galleries never get a
// new main through append.
func appendMarksMain(liveRows int64) bool {
	return liveRows == 0
}

// nextMainAfterDelete picks the surviving live row with the lowest idx.
func nextMainAfterDelete(remaining []models.Image) (uuid.UUID, bool) {
	best := -1
	var id uuid.UUID
	for _, row := range remaining {
		if !row.Live() {
			continue
		}
		if best == -1 || row.Idx < best {
			best = row.Idx
			id = row.ID
		}
	}
	return id, best != -1
}
