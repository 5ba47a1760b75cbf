package cart

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	shirt = Product{ID: 1, Name: "Shirt", UnitPrice: decimal.RequireFromString("10.00"), ImageRef: "shirt.png"}
	mug   = Product{ID: 2, Name: "Mug", UnitPrice: decimal.RequireFromString("5.00"), ImageRef: "mug.png"}
)

func TestAddItem(t *testing.T) {
	t.Run("Add new product", func(t *testing.T) {
		// given
		c := New()

		// when
		c.AddItem(shirt)

		// then
		assert.Equal(t, Snapshot{{ProductID: 1, Name: "Shirt", UnitPrice: shirt.UnitPrice, ImageRef: "shirt.png", Quantity: 1}}, c.Snapshot())
	})

	t.Run("Add same product twice", func(t *testing.T) {
		// given
		c := New()

		// when
		c.AddItem(shirt)
		c.AddItem(shirt)

		// then
		items := c.Snapshot()
		assert.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Price is not refreshed on second add", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)
		cheaper := shirt
		cheaper.UnitPrice = decimal.RequireFromString("7.50")

		// when
		c.AddItem(cheaper)

		// then
		items := c.Snapshot()
		assert.True(t, shirt.UnitPrice.Equal(items[0].UnitPrice))
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Negative price is normalized", func(t *testing.T) {
		// given
		c := New()

		// when
		c.AddItem(Product{ID: 3, Name: "Broken", UnitPrice: decimal.NewFromInt(-4)})

		// then
		assert.True(t, c.Total().IsZero())
		assert.True(t, c.Snapshot()[0].UnitPrice.IsZero())
	})

	t.Run("Insertion order is kept", func(t *testing.T) {
		// given
		c := New()

		// when
		c.AddItem(mug)
		c.AddItem(shirt)
		c.AddItem(mug)

		// then
		items := c.Snapshot()
		assert.Equal(t, ProductID(2), items[0].ProductID)
		assert.Equal(t, ProductID(1), items[1].ProductID)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Remove present product", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)
		c.AddItem(mug)

		// when
		c.RemoveItem(shirt.ID)

		// then
		items := c.Snapshot()
		assert.Len(t, items, 1)
		assert.Equal(t, mug.ID, items[0].ProductID)
	})

	t.Run("Remove absent product is a no-op", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)
		before := c.Snapshot()

		// when
		c.RemoveItem(99)

		// then
		assert.Equal(t, before, c.Snapshot())
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("Set quantity", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)

		// when
		c.SetQuantity(shirt.ID, 4)

		// then
		assert.Equal(t, 4, c.Snapshot()[0].Quantity)
		assert.Equal(t, "40", c.Total().String())
	})

	t.Run("Zero quantity removes", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)

		// when
		c.SetQuantity(shirt.ID, 0)

		// then
		assert.True(t, c.IsEmpty())
	})

	t.Run("Negative quantity is clamped and removes", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)

		// when
		c.SetQuantity(shirt.ID, -5)

		// then
		assert.True(t, c.IsEmpty())
	})

	t.Run("Huge quantity is clamped to maximum", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)

		// when
		c.SetQuantity(shirt.ID, math.MaxInt)

		// then
		assert.Equal(t, MaxQuantity, c.Snapshot()[0].Quantity)
		assert.True(t, c.Total().Equal(decimal.RequireFromString("99990")))
	})

	t.Run("Add after huge quantity does not overflow", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)
		c.SetQuantity(shirt.ID, math.MaxInt)

		// when
		c.AddItem(shirt)

		// then
		items := c.Snapshot()
		assert.Len(t, items, 1)
		assert.Equal(t, MaxQuantity, items[0].Quantity)
		assert.True(t, c.Total().IsPositive())
	})

	t.Run("Absent product is not inserted", func(t *testing.T) {
		// given
		c := New()

		// when
		c.SetQuantity(shirt.ID, 3)

		// then
		assert.True(t, c.IsEmpty())
	})
}

func TestTotal(t *testing.T) {
	t.Run("Empty cart", func(t *testing.T) {
		assert.True(t, New().Total().IsZero())
	})

	t.Run("Scenario", func(t *testing.T) {
		// given
		c := New()

		// when
		c.AddItem(shirt)
		c.AddItem(shirt)
		c.AddItem(mug)

		// then
		assert.True(t, decimal.RequireFromString("25.00").Equal(c.Total()))
		assert.Equal(t, 3, c.Count())
	})

	t.Run("Clear", func(t *testing.T) {
		// given
		c := New()
		c.AddItem(shirt)

		// when
		c.Clear()

		// then
		assert.True(t, c.IsEmpty())
		assert.True(t, c.Total().IsZero())
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	// given
	c := New()
	c.AddItem(shirt)
	snapshot := c.Snapshot()

	// when
	c.SetQuantity(shirt.ID, 7)
	c.AddItem(mug)

	// then
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Quantity)
}

func TestRandomOperations(t *testing.T) {
	products := []Product{
		shirt,
		mug,
		{ID: 3, Name: "Cap", UnitPrice: decimal.RequireFromString("12.99")},
		{ID: 4, Name: "Sticker", UnitPrice: decimal.RequireFromString("0.35")},
	}

	rnd := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		c := New()
		for op := 0; op < 50; op++ {
			p := products[rnd.Intn(len(products))]
			switch rnd.Intn(4) {
			case 0:
				c.AddItem(p)
			case 1:
				c.RemoveItem(p.ID)
			case 2:
				c.SetQuantity(p.ID, rnd.Intn(MaxQuantity+10)-3)
			case 3:
				if rnd.Intn(10) == 0 {
					c.Clear()
				} else {
					c.AddItem(p)
				}
			}

			items := c.Snapshot()
			expected := decimal.Zero
			seen := map[ProductID]bool{}
			for _, li := range items {
				assert.GreaterOrEqual(t, li.Quantity, 1)
				assert.LessOrEqual(t, li.Quantity, MaxQuantity)
				assert.False(t, seen[li.ProductID])
				seen[li.ProductID] = true
				expected = expected.Add(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
			}
			assert.True(t, expected.Equal(c.Total()))
		}
	}
}

func TestConcurrentAdds(t *testing.T) {
	// given
	c := New()
	wg := sync.WaitGroup{}

	// when
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddItem(mug)
		}()
	}
	wg.Wait()

	// then
	assert.Equal(t, 100, c.Count())
	assert.Equal(t, "500", c.Total().String())
}
