package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marshallshelly/storekiosk/pkg/cart"
	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/checkout"
	"github.com/marshallshelly/storekiosk/pkg/feedback"
)

func (m KioskModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeCatalog:
		if m.cartOpen {
			return m.handleCartKey(msg)
		}
		if m.productOpen {
			return m.handleProductKey(msg)
		}
		return m.handleCatalogKey(msg)

	case ModeFeedback:
		return m.handleFeedbackKey(msg)
	}

	// Loading and Offline screens take no input; Screensaver input was
	// already swallowed by the wake-up path.
	return m, nil
}

func (m KioskModel) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc":
			m.search.Blur()
			return m, nil
		case "enter":
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.viewState.SetSearch(m.search.Value())
			m.gridIndex = 0
			return m, cmd
		}
	}

	switch msg.String() {
	case "/":
		m.search.Focus()
		return m, nil

	case "left", "h":
		if m.viewState.Page > 1 {
			m.viewState.Page--
			m.gridIndex = 0
		}
		return m, nil

	case "right", "l":
		if page := m.page(); m.viewState.Page < page.TotalPages {
			m.viewState.Page++
			m.gridIndex = 0
		}
		return m, nil

	case "up", "k":
		if m.gridIndex > 0 {
			m.gridIndex--
		}
		return m, nil

	case "down", "j":
		if page := m.page(); m.gridIndex < len(page.Items)-1 {
			m.gridIndex++
		}
		return m, nil

	case "s":
		m.viewState.CycleSort()
		m.gridIndex = 0
		return m, nil

	case "f":
		m.viewState.ToggleInStock()
		m.gridIndex = 0
		return m, nil

	case "m":
		m.cycleMainCategory()
		m.gridIndex = 0
		return m, nil

	case "n":
		m.cycleSubCategory()
		m.gridIndex = 0
		return m, nil

	case "x":
		m.viewState.Reset()
		m.search.SetValue("")
		m.gridIndex = 0
		return m, nil

	case "v":
		if _, ok := m.selectedProduct(); ok {
			m.productOpen = true
		}
		return m, nil

	case "c":
		m.cartOpen = true
		m.cartIndex = 0
		return m, nil

	case "enter", " ":
		return m.addSelectedToCart()
	}

	return m, nil
}

func (m KioskModel) handleProductKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "v":
		m.productOpen = false
		return m, nil
	case "enter", " ":
		return m.addSelectedToCart()
	}
	return m, nil
}

func (m KioskModel) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.ledger.Lines()

	switch msg.String() {
	case "esc", "c":
		m.cartOpen = false
		return m, nil

	case "up", "k":
		if m.cartIndex > 0 {
			m.cartIndex--
		}
		return m, nil

	case "down", "j":
		if m.cartIndex < len(lines)-1 {
			m.cartIndex++
		}
		return m, nil

	case "+", "=", "right", "l":
		return m.adjustCartQuantity(+1)

	case "-", "left", "h":
		return m.adjustCartQuantity(-1)

	case "d", "delete", "backspace":
		if m.cartIndex >= len(lines) {
			return m, nil
		}
		m.ledger.Remove(lines[m.cartIndex].Product.ID)
		if m.cartIndex > 0 {
			m.cartIndex--
		}
		m.metrics.SetCartSize(m.ledger.Len())
		return m, m.showNotice("Item removed from cart", NoticeSuccess)

	case "p", "enter":
		return m.startCheckout()
	}

	return m, nil
}

func (m KioskModel) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.feedback == nil {
		return m, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4", "5":
		rating := int(msg.String()[0] - '0')
		if err := m.feedback.Choose(rating); err != nil {
			if errors.Is(err, feedback.ErrSubmitInFlight) {
				return m, nil // first submission wins
			}
			return m, nil
		}
		return m, m.submitFeedbackCmd(m.feedback.OrderID(), rating, false)
	}
	return m, nil
}

// selectedProduct returns the product under the grid cursor.
func (m KioskModel) selectedProduct() (catalog.Product, bool) {
	page := m.page()
	if m.gridIndex < 0 || m.gridIndex >= len(page.Items) {
		return catalog.Product{}, false
	}
	return page.Items[m.gridIndex], true
}

func (m KioskModel) addSelectedToCart() (tea.Model, tea.Cmd) {
	p, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	if !p.InStock() {
		return m, m.showNotice("Out of stock", NoticeError)
	}

	if err := m.ledger.AddOrIncrement(p, 1); err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			return m, m.showNotice(
				fmt.Sprintf("Only %d in stock for %s", p.Quantity, p.Name), NoticeError)
		}
		return m, m.showNotice("Could not add item", NoticeError)
	}

	m.productOpen = false
	m.metrics.SetCartSize(m.ledger.Len())
	return m, m.showNotice("Item added to cart", NoticeSuccess)
}

func (m KioskModel) adjustCartQuantity(delta int) (tea.Model, tea.Cmd) {
	lines := m.ledger.Lines()
	if m.cartIndex >= len(lines) {
		return m, nil
	}
	line := lines[m.cartIndex]

	// Prefer the freshest stock figure the store has; fall back to the
	// snapshot taken when the line was added.
	product := line.Product
	if p, ok := m.store.Product(line.Product.ID); ok {
		product = p
	}

	err := m.ledger.SetQuantity(product, line.Quantity+delta)
	if errors.Is(err, cart.ErrInsufficientStock) {
		return m, m.showNotice(
			fmt.Sprintf("Only %d in stock for %s", product.Quantity, product.Name), NoticeError)
	}
	if m.cartIndex >= m.ledger.Len() && m.cartIndex > 0 {
		m.cartIndex--
	}
	m.metrics.SetCartSize(m.ledger.Len())
	return m, nil
}

func (m KioskModel) startCheckout() (tea.Model, tea.Cmd) {
	order, err := m.checkout.Begin(m.ledger)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return m, m.showNotice("Please add items to your cart before printing.", NoticeError)
	case errors.Is(err, checkout.ErrSubmitInFlight):
		return m, nil // one outstanding checkout at a time
	case err != nil:
		return m, m.showNotice("Could not start checkout", NoticeError)
	}
	return m, m.printCmd(order)
}

func (m *KioskModel) cycleMainCategory() {
	categories := m.store.MainCategories()
	if len(categories) == 0 {
		return
	}
	if m.viewState.MainCategory == 0 {
		m.viewState.SelectMainCategory(categories[0].ID)
		return
	}
	for i, c := range categories {
		if c.ID == m.viewState.MainCategory {
			if i+1 < len(categories) {
				m.viewState.SelectMainCategory(categories[i+1].ID)
			} else {
				m.viewState.SelectMainCategory(c.ID) // toggles off
			}
			return
		}
	}
	m.viewState.SelectMainCategory(categories[0].ID)
}

func (m *KioskModel) cycleSubCategory() {
	categories := m.store.SubCategories()
	if len(categories) == 0 {
		return
	}
	if m.viewState.SubCategory == 0 {
		m.viewState.SelectSubCategory(categories[0].ID)
		return
	}
	for i, c := range categories {
		if c.ID == m.viewState.SubCategory {
			if i+1 < len(categories) {
				m.viewState.SelectSubCategory(categories[i+1].ID)
			} else {
				m.viewState.SelectSubCategory(c.ID) // toggles off
			}
			return
		}
	}
	m.viewState.SelectSubCategory(categories[0].ID)
}
