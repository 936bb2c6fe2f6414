package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeFromSKU(t *testing.T) {
	t.Run("should read the size off the last token", func(t *testing.T) {
		tests := []struct {
			sku  string
			size string
		}{
			{"TEE-RED-L", "L"},
			{"TEE-RED-XL", "XL"},
			{"HOOD-BLK-S", "S"},
			{"CAP_GRN_HS", "HS"},
			{"CAP/GRN/HX", "HX"},
			{"TEE NAVY XX", "XX"},
			{"TEE-NAVY-XXX", "XXX"},
		}

		for _, test := range tests {
			t.Run(test.sku, func(t *testing.T) {
				size, ok := services.SizeFromSKU(test.sku)

				assert.True(t, ok)
				assert.Equal(t, test.size, size)
			})
		}
	})

	t.Run("should uppercase the token before matching", func(t *testing.T) {
		size, ok := services.SizeFromSKU("tee-red-xl")

		assert.True(t, ok)
		assert.Equal(t, "XL", size)
	})

	t.Run("should report no size for an unrecognized token", func(t *testing.T) {
		tests := []string{"TEE-RED-MEDIUM", "SKU123", "TEE-RED-", ""}

		for _, sku := range tests {
			_, ok := services.SizeFromSKU(sku)

			assert.False(t, ok, "sku %q", sku)
		}
	})

	t.Run("should only look at the last token", func(t *testing.T) {
		// XL appears mid-SKU but the trailing token decides.
		_, ok := services.SizeFromSKU("TEE-XL-CUSTOM")

		assert.False(t, ok)
	})
}

func TestSizeRank(t *testing.T) {
	t.Run("should order sizes S, L, XL, HS, HX, XX, XXX", func(t *testing.T) {
		ordered := []string{"A-S", "A-L", "A-XL", "A-HS", "A-HX", "A-XX", "A-XXX"}

		for i := 1; i < len(ordered); i++ {
			assert.Less(t,
				services.SizeRank(ordered[i-1]),
				services.SizeRank(ordered[i]),
				"%s should rank before %s", ordered[i-1], ordered[i])
		}
	})

	t.Run("should rank unknown sizes last", func(t *testing.T) {
		assert.Greater(t, services.SizeRank("TEE-RED-CUSTOM"), services.SizeRank("TEE-RED-XXX"))
	})

	t.Run("should rank all unknown sizes equally", func(t *testing.T) {
		assert.Equal(t, services.SizeRank("SKU123"), services.SizeRank("TEE-RED-MEDIUM"))
	})
}

func TestSortLineItems(t *testing.T) {
	item := func(sku string) *order.LineItem {
		i, err := order.NewLineItem(sku, "item "+sku, 1)
		require.NoError(t, err)
		return i
	}

	t.Run("should sort by size order for display", func(t *testing.T) {
		items := []*order.LineItem{
			item("TEE-RED-XXX"),
			item("TEE-RED-S"),
			item("TEE-RED-HS"),
			item("TEE-RED-L"),
		}

		sorted := services.SortLineItems(items)

		skus := make([]string, 0, len(sorted))
		for _, i := range sorted {
			skus = append(skus, i.SKU())
		}
		assert.Equal(t, []string{"TEE-RED-S", "TEE-RED-L", "TEE-RED-HS", "TEE-RED-XXX"}, skus)
	})

	t.Run("should keep unknown sizes after known ones", func(t *testing.T) {
		items := []*order.LineItem{
			item("MUG-BLUE"),
			item("TEE-RED-XL"),
		}

		sorted := services.SortLineItems(items)

		assert.Equal(t, "TEE-RED-XL", sorted[0].SKU())
		assert.Equal(t, "MUG-BLUE", sorted[1].SKU())
	})

	t.Run("should preserve input order among equal ranks", func(t *testing.T) {
		items := []*order.LineItem{
			item("MUG-BLUE"),
			item("PEN-BLACK"),
			item("TEE-RED-L"),
			item("HOOD-GRN-L"),
		}

		sorted := services.SortLineItems(items)

		skus := make([]string, 0, len(sorted))
		for _, i := range sorted {
			skus = append(skus, i.SKU())
		}
		assert.Equal(t, []string{"TEE-RED-L", "HOOD-GRN-L", "MUG-BLUE", "PEN-BLACK"}, skus)
	})

	t.Run("should not mutate the input slice", func(t *testing.T) {
		items := []*order.LineItem{
			item("TEE-RED-XXX"),
			item("TEE-RED-S"),
		}

		services.SortLineItems(items)

		assert.Equal(t, "TEE-RED-XXX", items[0].SKU())
		assert.Equal(t, "TEE-RED-S", items[1].SKU())
	})
}
