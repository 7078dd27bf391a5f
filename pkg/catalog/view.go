package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey identifies one of the four supported product orderings.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ViewState is the combination of search, sort, category and stock filters
// plus the pagination cursor. Any predicate change snaps the cursor back to
// the first page. Main and sub category selections are mutually exclusive.
type ViewState struct {
	Search       string
	Sort         SortKey
	MainCategory int64 // 0 = none
	SubCategory  int64 // 0 = none
	InStockOnly  bool
	Page         int
}

// NewViewState returns the default view state: no filters, name ascending,
// first page.
func NewViewState() ViewState {
	return ViewState{Sort: SortNameAsc, Page: 1}
}

// Reset restores all defaults. Called on idle timeout.
func (v *ViewState) Reset() {
	*v = NewViewState()
}

// SetSearch replaces the search text and resets the cursor.
func (v *ViewState) SetSearch(q string) {
	v.Search = q
	v.Page = 1
}

// SetSort replaces the sort key and resets the cursor.
func (v *ViewState) SetSort(key SortKey) {
	v.Sort = key
	v.Page = 1
}

// CycleSort advances to the next sort key in display order.
func (v *ViewState) CycleSort() {
	order := []SortKey{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}
	for i, key := range order {
		if v.Sort == key {
			v.SetSort(order[(i+1)%len(order)])
			return
		}
	}
	v.SetSort(SortNameAsc)
}

// SelectMainCategory toggles a main category selection. Selecting a main
// category always clears any sub category selection.
func (v *ViewState) SelectMainCategory(id int64) {
	if v.MainCategory == id {
		v.MainCategory = 0
	} else {
		v.MainCategory = id
	}
	v.SubCategory = 0
	v.Page = 1
}

// SelectSubCategory toggles a sub category selection. Selecting a sub
// category always clears any main category selection.
func (v *ViewState) SelectSubCategory(id int64) {
	if v.SubCategory == id {
		v.SubCategory = 0
	} else {
		v.SubCategory = id
	}
	v.MainCategory = 0
	v.Page = 1
}

// ToggleInStock flips the in-stock-only filter and resets the cursor.
func (v *ViewState) ToggleInStock() {
	v.InStockOnly = !v.InStockOnly
	v.Page = 1
}

// ViewPage is one screenful of the filtered, sorted catalog.
type ViewPage struct {
	Items      []Product
	Number     int // 1-based; 0 when the result set is empty
	TotalPages int
	TotalItems int
}

// View derives the page to display from the catalog and the current view
// state. It is a pure function: no side effects, input slices untouched.
func View(products []Product, subCategories []SubCategory, state ViewState, pageSize int) ViewPage {
	filtered := filter(products, subCategories, state)
	sortProducts(filtered, state.Sort)

	total := len(filtered)
	if total == 0 {
		return ViewPage{Number: 0, TotalPages: 0}
	}

	totalPages := (total + pageSize - 1) / pageSize
	page := state.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	return ViewPage{
		Items:      filtered[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func filter(products []Product, subCategories []SubCategory, state ViewState) []Product {
	// Sub category id -> parent main category id, for main-category matching.
	parents := make(map[int64]int64, len(subCategories))
	for _, sub := range subCategories {
		parents[sub.ID] = sub.MainCategory
	}

	query := strings.ToLower(strings.TrimSpace(state.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) {
			continue
		}
		if state.MainCategory != 0 && parents[p.SubCategory] != state.MainCategory {
			continue
		}
		if state.SubCategory != 0 && p.SubCategory != state.SubCategory {
			continue
		}
		if state.InStockOnly && !p.InStock() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []Product, key SortKey) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(products, func(i, j int) bool {
		switch key {
		case SortNameDesc:
			return c.CompareString(products[i].Name, products[j].Name) > 0
		case SortPriceAsc:
			return products[i].Price < products[j].Price
		case SortPriceDesc:
			return products[i].Price > products[j].Price
		default: // SortNameAsc
			return c.CompareString(products[i].Name, products[j].Name) < 0
		}
	})
}
