package services

import (
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

// sizeRanks returns the fixed display order of recognized size tokens.
// SKUs whose size is not recognized sort after every recognized size.
func sizeRanks() map[string]int {
	return map[string]int{
		"S":   0,
		"L":   1,
		"XL":  2,
		"HS":  3,
		"HX":  4,
		"XX":  5,
		"XXX": 6,
	}
}

// unknownSizeRank sorts SKUs without a recognized size token last.
const unknownSizeRank = 7

// SizeFromSKU extracts the size token from a SKU.
//
// The grammar is deliberately narrow: the SKU is split on "-", "_", "/" and
// spaces, and the last token, uppercased, must be one of the recognized
// sizes. Anything else means the SKU carries no size.
//
// Parameters:
//   - sku: The stock keeping unit to parse
//
// Returns:
//   - string: The recognized size token, uppercased
//   - bool: false if the SKU carries no recognized size
func SizeFromSKU(sku string) (string, bool) {
	fields := strings.FieldsFunc(sku, func(r rune) bool {
		return r == '-' || r == '_' || r == '/' || r == ' '
	})
	if len(fields) == 0 {
		return "", false
	}

	token := strings.ToUpper(fields[len(fields)-1])
	if _, ok := sizeRanks()[token]; !ok {
		return "", false
	}
	return token, true
}

// SizeRank returns the display rank of a SKU: recognized sizes in their
// fixed order, everything else last.
func SizeRank(sku string) int {
	token, ok := SizeFromSKU(sku)
	if !ok {
		return unknownSizeRank
	}
	return sizeRanks()[token]
}

// SortLineItems returns the worksheet items in display order: by size rank,
// stable within equal ranks so the original order of same-size items is
// preserved. The input slice is not modified.
//
// This ordering exists only for presentation; nothing in stage gating
// depends on it.
func SortLineItems(items []*order.LineItem) []*order.LineItem {
	out := make([]*order.LineItem, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return SizeRank(out[i].SKU()) < SizeRank(out[j].SKU())
	})
	return out
}
