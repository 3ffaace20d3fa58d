package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscount(t *testing.T) {
	t.Run("no rate leaves derived fields nil", func(t *testing.T) {
		p := Product{Price: 4200}
		p.ComputeDiscount()
		assert.Nil(t, p.Discount)
		assert.Nil(t, p.DiscountLessValue)
	})

	t.Run("basis points against minor units", func(t *testing.T) {
		rate := int64(2500) // 25%
		p := Product{Price: 4200, DiscountRate: &rate}
		p.ComputeDiscount()
		assert.Equal(t, int64(1050), *p.Discount)
		assert.Equal(t, int64(3150), *p.DiscountLessValue)
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		rate := int64(3333)
		p := Product{Price: 100, DiscountRate: &rate}
		p.ComputeDiscount()
		assert.Equal(t, int64(33), *p.Discount)
		assert.Equal(t, int64(67), *p.DiscountLessValue)
	})
}

func TestOrderRefBlocking(t *testing.T) {
	now := time.Now()

	t.Run("active fulfilment always blocks", func(t *testing.T) {
		assert.True(t, OrderRef{Status: OrderStatusProcessing}.Blocking(now))
		assert.True(t, OrderRef{Status: OrderStatusOutForDelivery}.Blocking(now))
	})

	t.Run("recent delivery blocks inside the grace window", func(t *testing.T) {
		delivered := now.AddDate(0, 0, -10)
		ref := OrderRef{Status: OrderStatusDelivered, CreatedAt: delivered, DeliveredAt: &delivered}
		assert.True(t, ref.Blocking(now))
	})

	t.Run("old delivery does not block", func(t *testing.T) {
		delivered := now.AddDate(0, 0, -31)
		ref := OrderRef{Status: OrderStatusDelivered, CreatedAt: delivered, DeliveredAt: &delivered}
		assert.False(t, ref.Blocking(now))
	})

	t.Run("cancelled orders never block", func(t *testing.T) {
		assert.False(t, OrderRef{Status: "cancelled", CreatedAt: now}.Blocking(now))
	})
}

func TestAppErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, ValidationError("x").HTTPStatus())
	assert.Equal(t, 409, RelationshipConflict("x").HTTPStatus())
	assert.Equal(t, 500, StorageError(nil).HTTPStatus())
	assert.Equal(t, 500, PersistenceError(nil).HTTPStatus())
}
