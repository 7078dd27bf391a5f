package catalog

// Store holds the fetched product and category lists. Refreshes are wholesale:
// a later successful fetch fully replaces the previous list (last write wins),
// including one that lands after an idle reset. There is no merge logic.
type Store struct {
	products       []Product
	mainCategories []MainCategory
	subCategories  []SubCategory
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceProducts swaps in a freshly fetched product list.
func (s *Store) ReplaceProducts(products []Product) {
	s.products = products
}

// ReplaceCategories swaps in freshly fetched category lists.
func (s *Store) ReplaceCategories(main []MainCategory, sub []SubCategory) {
	s.mainCategories = main
	s.subCategories = sub
}

// Products returns a copy of the current product list.
func (s *Store) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// MainCategories returns a copy of the current main category list.
func (s *Store) MainCategories() []MainCategory {
	out := make([]MainCategory, len(s.mainCategories))
	copy(out, s.mainCategories)
	return out
}

// SubCategories returns a copy of the current sub category list.
func (s *Store) SubCategories() []SubCategory {
	out := make([]SubCategory, len(s.subCategories))
	copy(out, s.subCategories)
	return out
}

// Product looks up a product by id.
func (s *Store) Product(id int64) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Len returns the number of products currently held.
func (s *Store) Len() int {
	return len(s.products)
}
