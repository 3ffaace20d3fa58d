package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yash77492562/E-commerce-sub000/models"
)

func strPtr(s string) *string { return &s }

func sibling(id uuid.UUID, sub *string) models.Product {
	cat := "Ceramics"
	return models.Product{ID: id, Category: &cat, SubCategory: sub}
}

func TestClassifyTaxonomy(t *testing.T) {
	p1 := uuid.Must(uuid.NewV7())
	p2 := uuid.Must(uuid.NewV7())
	p3 := uuid.Must(uuid.NewV7())

	t.Run("all null is flat", func(t *testing.T) {
		siblings := []models.Product{sibling(p1, nil), sibling(p2, nil)}
		assert.Equal(t, TaxonomyFlat, ClassifyTaxonomy(siblings))
	})

	t.Run("empty category is flat", func(t *testing.T) {
		assert.Equal(t, TaxonomyFlat, ClassifyTaxonomy(nil))
	})

	t.Run("default plus one label is normalized", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		assert.Equal(t, TaxonomyNormalized, ClassifyTaxonomy(siblings))
	})

	t.Run("two labels is multi", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr("vases")),
			sibling(p3, strPtr(models.SubCategoryDefault)),
		}
		assert.Equal(t, TaxonomyMulti, ClassifyTaxonomy(siblings))
	})

	t.Run("null next to a label is mixed", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, nil),
		}
		assert.Equal(t, TaxonomyMixed, ClassifyTaxonomy(siblings))
	})
}

func TestEvaluateSubCategoryChange_Clear(t *testing.T) {
	p1 := uuid.Must(uuid.NewV7())
	p2 := uuid.Must(uuid.NewV7())

	t.Run("sole labeled holder may clear, triggering bulk reset", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		d := EvaluateSubCategoryChange(siblings, p1, nil, false)
		assert.True(t, d.Allowed)
		assert.True(t, d.BulkReset)
		assert.False(t, d.BackfillDefault)
	})

	t.Run("default holder may not clear", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		d := EvaluateSubCategoryChange(siblings, p2, strPtr(""), false)
		assert.False(t, d.Allowed)
		assert.Equal(t, "cannot remove subcategory in current configuration", d.Reason)
	})

	t.Run("clear rejected when label has two holders", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr("bowls")),
			sibling(uuid.Must(uuid.NewV7()), strPtr(models.SubCategoryDefault)),
		}
		d := EvaluateSubCategoryChange(siblings, p1, nil, false)
		assert.False(t, d.Allowed)
	})

	t.Run("clear rejected while a null sibling exists", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
			sibling(uuid.Must(uuid.NewV7()), nil),
		}
		d := EvaluateSubCategoryChange(siblings, p1, nil, false)
		assert.False(t, d.Allowed)
	})

	t.Run("clear rejected in a flat category", func(t *testing.T) {
		siblings := []models.Product{sibling(p1, nil), sibling(p2, nil)}
		d := EvaluateSubCategoryChange(siblings, p1, nil, false)
		assert.False(t, d.Allowed)
	})
}

func TestEvaluateSubCategoryChange_SetLabel(t *testing.T) {
	p1 := uuid.Must(uuid.NewV7())
	p2 := uuid.Must(uuid.NewV7())

	t.Run("new label with backfill flag rewrites null siblings", func(t *testing.T) {
		siblings := []models.Product{sibling(p1, nil), sibling(p2, nil)}
		d := EvaluateSubCategoryChange(siblings, p1, strPtr("bowls"), true)
		assert.True(t, d.Allowed)
		assert.True(t, d.BackfillDefault)
		assert.False(t, d.BulkReset)
	})

	t.Run("existing label without flag needs no sibling rewrite", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		d := EvaluateSubCategoryChange(siblings, p2, strPtr("bowls"), false)
		assert.True(t, d.Allowed)
		assert.False(t, d.BackfillDefault)
		assert.False(t, d.BulkReset)
	})

	t.Run("setting default never backfills", func(t *testing.T) {
		siblings := []models.Product{sibling(p1, nil), sibling(p2, strPtr("bowls"))}
		d := EvaluateSubCategoryChange(siblings, p1, strPtr(models.SubCategoryDefault), true)
		assert.True(t, d.Allowed)
		assert.False(t, d.BackfillDefault)
	})
}

func TestEvaluateDeleteReset(t *testing.T) {
	p1 := uuid.Must(uuid.NewV7())
	p2 := uuid.Must(uuid.NewV7())

	t.Run("deleting sole labeled holder forces reset", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		assert.True(t, EvaluateDeleteReset(siblings, p1))
	})

	t.Run("deleting a default holder does not", func(t *testing.T) {
		siblings := []models.Product{
			sibling(p1, strPtr("bowls")),
			sibling(p2, strPtr(models.SubCategoryDefault)),
		}
		assert.False(t, EvaluateDeleteReset(siblings, p2))
	})

	t.Run("deleting from a flat category does not", func(t *testing.T) {
		siblings := []models.Product{sibling(p1, nil), sibling(p2, nil)}
		assert.False(t, EvaluateDeleteReset(siblings, p1))
	})
}
