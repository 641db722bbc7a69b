package repo

const (
	SortNewest       = ""
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortQuantityAsc  = "quantity_asc"
	SortQuantityDesc = "quantity_desc"
)

type ProductFilter struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Sort     string
	Offset   *int
	Limit    *int
}

func ValidSort(s string) bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortQuantityAsc, SortQuantityDesc:
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// window returns the [start, end) bounds of a page over total items.
func window(total int, offset, limit *int) (int, int) {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}

	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}
	return start, end
}
