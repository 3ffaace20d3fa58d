package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/yash77492562/E-commerce-sub000/models"
)

// Taxonomy states derived from the distinct sub_category values within one
// category. NULL counts as its own distinct value.
const (
	TaxonomyFlat       = "flat"       // every sibling has sub_category = NULL
	TaxonomyNormalized = "normalized" // exactly {"default", one label}, default set non-empty
	TaxonomyMulti      = "multi"      // more than one non-default label
	TaxonomyMixed      = "mixed"      // transitional shapes (e.g. NULL next to a label)
)

const reasonCannotClear = "cannot remove subcategory in current configuration"

// SubCategoryDecision is the outcome of evaluating a requested subcategory
// change against the category's current siblings. ApplyDecision is the only
// code allowed to act on it.
type SubCategoryDecision struct {
	Allowed         bool
	Reason          string
	BulkReset       bool // every sibling reset to NULL alongside the target write
	BackfillDefault bool // NULL siblings (excluding target) rewritten to "default"
}

// SubCategoryService is the single home of the category/subcategory
// consistency rules. Every write path that can change a product's category
// membership goes through EvaluateSubCategoryChange + ApplyDecision on one
// transaction handle.
type SubCategoryService struct {
	db    *gorm.DB
	store *pgxpool.Pool
}

func NewSubCategoryService(db *gorm.DB, store *pgxpool.Pool) *SubCategoryService {
	return &SubCategoryService{db: db, store: store}
}

// LoadCategorySiblings loads every product in the category, matched
// case-insensitively.
func (s *SubCategoryService) LoadCategorySiblings(ctx context.Context, category string) ([]models.Product, error) {
	var siblings []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Find(&siblings).Error
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	return siblings, nil
}

// ClassifyTaxonomy reports the category's taxonomy state for the given
// sibling set.
func ClassifyTaxonomy(siblings []models.Product) string {
	defaults, labels, nulls := partitionSiblings(siblings)

	distinct := len(labels)
	if len(defaults) > 0 {
		distinct++
	}
	if len(nulls) > 0 {
		distinct++
	}

	switch {
	case len(labels) > 1:
		return TaxonomyMulti
	case distinct == 0 || (distinct == 1 && len(nulls) > 0):
		return TaxonomyFlat
	case distinct == 2 && len(defaults) > 0 && len(labels) == 1:
		return TaxonomyNormalized
	default:
		return TaxonomyMixed
	}
}

// partitionSiblings splits siblings into default-labeled, concretely
// labeled (label → product ids) and NULL sets.
func partitionSiblings(siblings []models.Product) (defaults []uuid.UUID, labels map[string][]uuid.UUID, nulls []uuid.UUID) {
	labels = make(map[string][]uuid.UUID)
	for _, p := range siblings {
		switch {
		case p.SubCategory == nil:
			nulls = append(nulls, p.ID)
		case *p.SubCategory == models.SubCategoryDefault:
			defaults = append(defaults, p.ID)
		default:
			labels[*p.SubCategory] = append(labels[*p.SubCategory], p.ID)
		}
	}
	return defaults, labels, nulls
}

// EvaluateSubCategoryChange decides what a requested subcategory write for
// productID means for its siblings. desired nil (or empty) is a clear
// request; a clear is permitted only when the category is normalized, the
// non-default label has exactly one holder and that holder is productID —
// and it implies a bulk reset of every sibling to NULL. A concrete
// non-default label combined with updateDefault backfills NULL siblings to
// "default" so the category never mixes NULL with a label.
func EvaluateSubCategoryChange(siblings []models.Product, productID uuid.UUID, desired *string, updateDefault bool) SubCategoryDecision {
	defaults, labels, nulls := partitionSiblings(siblings)

	if desired == nil || *desired == "" {
		if len(labels) != 1 || len(defaults) == 0 || len(nulls) != 0 {
			return SubCategoryDecision{Reason: reasonCannotClear}
		}
		for _, holders := range labels {
			if len(holders) == 1 && holders[0] == productID {
				return SubCategoryDecision{Allowed: true, BulkReset: true}
			}
		}
		return SubCategoryDecision{Reason: reasonCannotClear}
	}

	if *desired != models.SubCategoryDefault && updateDefault {
		return SubCategoryDecision{Allowed: true, BackfillDefault: true}
	}

	return SubCategoryDecision{Allowed: true}
}

// EvaluateDeleteReset treats deleting productID as removing its category
// membership: when the product is the sole holder of the non-default label
// in a normalized category, its siblings must be reset to NULL inside the
// delete transaction.
func EvaluateDeleteReset(siblings []models.Product, productID uuid.UUID) bool {
	d := EvaluateSubCategoryChange(siblings, productID, nil, false)
	return d.Allowed && d.BulkReset
}

// ApplyDecision performs the sibling bulk writes plus the target product's
// own sub_category write on the supplied transaction handle. This is the
// only way the bulk rewrite happens; a failure rolls back everything.
func (s *SubCategoryService) ApplyDecision(tx *gorm.DB, category string, productID uuid.UUID, desired *string, d SubCategoryDecision) error {
	if !d.Allowed {
		return models.RelationshipConflict(d.Reason)
	}

	if d.BulkReset {
		if err := tx.Model(&models.Product{}).
			Where("LOWER(category) = LOWER(?)", category).
			Update("sub_category", nil).Error; err != nil {
			return models.PersistenceError(err)
		}
		return nil
	}

	if d.BackfillDefault {
		if err := tx.Model(&models.Product{}).
			Where("LOWER(category) = LOWER(?) AND sub_category IS NULL AND id <> ?", category, productID).
			Update("sub_category", models.SubCategoryDefault).Error; err != nil {
			return models.PersistenceError(err)
		}
	}

	var value interface{}
	if desired != nil && *desired != "" {
		value = *desired
	}
	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("sub_category", value).Error; err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// ApplyDeleteReset resets the deleted product's siblings to NULL. The
// target row is excluded because the delete in the same transaction removes
// it.
func (s *SubCategoryService) ApplyDeleteReset(tx *gorm.DB, category string, productID uuid.UUID) error {
	if err := tx.Model(&models.Product{}).
		Where("LOWER(category) = LOWER(?) AND id <> ?", category, productID).
		Update("sub_category", nil).Error; err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Delete preconditions (storefront DB)
// ════════════════════════════════════════════════════════════

// CanDeleteProduct checks the order-side delete preconditions against the
// storefront database: an order in active fulfilment blocks outright, a
// delivered order blocks inside the grace window.
func (s *SubCategoryService) CanDeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return models.ValidationError("product id is required")
	}

	refs, err := s.loadOrderRefs(ctx, productID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, ref := range refs {
		if !ref.Blocking(now) {
			continue
		}
		if ref.Status == models.OrderStatusDelivered {
			return models.RelationshipConflict(fmt.Sprintf(
				"product was delivered in order %s less than %d days ago", ref.OrderID, models.DeliveredOrderGraceDays))
		}
		return models.RelationshipConflict(fmt.Sprintf(
			"product is part of order %s with status %q", ref.OrderID, ref.Status))
	}
	return nil
}

func (s *SubCategoryService) loadOrderRefs(ctx context.Context, productID uuid.UUID) ([]models.OrderRef, error) {
	query := `
		SELECT o.id, o.status, o.created_at, o.delivered_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.product_id = $1`

	rows, err := s.store.Query(ctx, query, productID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	var refs []models.OrderRef
	for rows.Next() {
		var ref models.OrderRef
		if err := rows.Scan(&ref.OrderID, &ref.Status, &ref.CreatedAt, &ref.DeliveredAt); err != nil {
			return nil, models.PersistenceError(err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return refs, nil
}

// PurgeStaleCartRefs removes cart rows for a deleted product that are older
// than the cart-reference window. Younger rows are left dangling for the
// storefront UI to filter. Runs after the delete transaction commits and is
// best-effort: a failure is logged by the caller, never surfaced.
func (s *SubCategoryService) PurgeStaleCartRefs(ctx context.Context, productID uuid.UUID) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -models.CartRefMaxAgeDays)
	tag, err := s.store.Exec(ctx,
		`DELETE FROM cart_items WHERE product_id = $1 AND added_at < $2`,
		productID, cutoff)
	if err != nil {
		return 0, models.PersistenceError(err)
	}
	return tag.RowsAffected(), nil
}

// ════════════════════════════════════════════════════════════
// Derived taxonomy read
// ════════════════════════════════════════════════════════════

// BuildCategoryBreakdown computes the category → subcategory view across
// the whole catalog. Results are sorted by category name; callers cache
// them.
func (s *SubCategoryService) BuildCategoryBreakdown(ctx context.Context) ([]models.CategoryBreakdown, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Select("id", "category", "sub_category", "price").
		Where("category IS NOT NULL").
		Find(&products).Error
	if err != nil {
		return nil, models.PersistenceError(err)
	}

	grouped := make(map[string][]models.Product)
	for _, p := range products {
		key := strings.ToLower(*p.Category)
		grouped[key] = append(grouped[key], p)
	}

	out := make([]models.CategoryBreakdown, 0, len(grouped))
	for _, siblings := range grouped {
		subs := make(map[string]struct{})
		for _, p := range siblings {
			if p.SubCategory != nil {
				subs[*p.SubCategory] = struct{}{}
			}
		}
		names := make([]string, 0, len(subs))
		for name := range subs {
			names = append(names, name)
		}
		sort.Strings(names)

		out = append(out, models.CategoryBreakdown{
			Category:      *siblings[0].Category,
			State:         ClassifyTaxonomy(siblings),
			SubCategories: names,
			Products:      len(siblings),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
