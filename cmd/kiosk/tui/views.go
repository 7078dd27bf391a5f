package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/feedback"
)

// View renders the current screen.
func (m KioskModel) View() string {
	var screen string
	switch m.mode {
	case ModeLoading:
		screen = m.viewLoading()
	case ModeCatalog:
		screen = m.viewCatalog()
	case ModeFeedback:
		screen = m.viewFeedback()
	case ModeScreensaver:
		screen = m.viewScreensaver()
	case ModeOffline:
		screen = m.viewOffline()
	}

	if m.notice.Visible(time.Now()) {
		screen = lipgloss.JoinVertical(lipgloss.Right, m.notice.View(), screen)
	}
	return screen
}

func (m KioskModel) viewLoading() string {
	body := titleStyle.Render("Universal Auto Supply and Bolt Center") + "\n\n" +
		infoStyle.Render("Connecting to the store...")
	if m.bootErr != nil {
		body += "\n\n" + dangerStyle.Render("Could not reach the store backend.") + "\n" +
			mutedStyle.Render("The kiosk will retry automatically.")
	}
	return m.center(boxStyle.Render(body))
}

func (m KioskModel) viewOffline() string {
	body := dangerStyle.Render("Kiosk temporarily unavailable") + "\n\n" +
		mutedStyle.Render("We lost the connection to the store.\nService will resume automatically.")
	return m.center(dangerBoxStyle.Render(body))
}

func (m KioskModel) viewScreensaver() string {
	frames := []string{
		titleStyle.Render("Universal Auto Supply and Bolt Center") + "\n\n" +
			infoStyle.Render("Touch any key to start shopping"),
		titleStyle.Render("Browse - Pick - Print") + "\n\n" +
			infoStyle.Render("Your receipt, ready at the cashier"),
		titleStyle.Render("Bolts, fasteners and auto supplies") + "\n\n" +
			infoStyle.Render("Touch any key to begin"),
	}
	return m.center(frames[m.idle.Frame()])
}

func (m KioskModel) viewCatalog() string {
	page := m.page()

	topbar := m.viewTopbar(page)
	sidebar := sidebarStyle.Render(m.viewSidebar())
	grid := m.viewGrid(page)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, grid)
	footer := m.viewCatalogFooter()

	screen := lipgloss.JoinVertical(lipgloss.Left, topbar, body, footer)

	if m.cartOpen {
		return m.overlay(screen, m.viewCart())
	}
	if m.productOpen {
		if p, ok := m.selectedProduct(); ok {
			return m.overlay(screen, m.viewProductDetail(p))
		}
	}
	return screen
}

func (m KioskModel) viewTopbar(page catalog.ViewPage) string {
	search := m.search.View()
	if !m.search.Focused() && m.search.Value() == "" {
		search = mutedStyle.Render("/ to search")
	}

	sort := "Sort: " + sortLabel(m.viewState.Sort)
	stock := "All items"
	if m.viewState.InStockOnly {
		stock = "In stock only"
	}
	pages := "No products found."
	if page.TotalPages > 0 {
		pages = fmt.Sprintf("Page %d of %d (%d items)", page.Number, page.TotalPages, page.TotalItems)
	}

	left := titleStyle.Render("Products")
	right := subtitleStyle.Render("Universal Auto Supply and Bolt Center")
	status := infoStyle.Render(sort) + "  " + mutedStyle.Render(stock) + "  " + mutedStyle.Render(pages)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
		lipgloss.JoinHorizontal(lipgloss.Top, status, "  ", search),
	)
}

func (m KioskModel) viewSidebar() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n")

	line := filterStyle.Render("Show All")
	if m.viewState.MainCategory == 0 && m.viewState.SubCategory == 0 {
		line = selectedFilterStyle.Render("Show All")
	}
	b.WriteString(line + "\n\n")

	b.WriteString(infoStyle.Render("Main Categories") + "\n")
	for _, c := range m.store.MainCategories() {
		label := fmt.Sprintf("%s (%d)", c.Name, c.ProductCount)
		if c.ID == m.viewState.MainCategory {
			b.WriteString(selectedFilterStyle.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(filterStyle.Render("  "+label) + "\n")
		}
	}

	b.WriteString("\n" + infoStyle.Render("Sub Categories") + "\n")
	for _, c := range m.store.SubCategories() {
		label := fmt.Sprintf("%s (%d)", c.Name, c.ProductCount)
		if c.ID == m.viewState.SubCategory {
			b.WriteString(selectedFilterStyle.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(filterStyle.Render("  "+label) + "\n")
		}
	}

	b.WriteString("\n")
	cartLabel := fmt.Sprintf("Cart (%d)", m.ledger.Len())
	b.WriteString(successStyle.Render(cartLabel))

	return b.String()
}

func (m KioskModel) viewGrid(page catalog.ViewPage) string {
	if len(page.Items) == 0 {
		return boxStyle.Render(mutedStyle.Render("No products found."))
	}

	cards := make([]string, 0, len(page.Items))
	for i, p := range page.Items {
		cards = append(cards, m.viewCard(p, i == m.gridIndex))
	}

	// Three cards per row, matching the web kiosk's grid.
	rows := make([]string, 0, (len(cards)+2)/3)
	for i := 0; i < len(cards); i += 3 {
		end := min(i+3, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m KioskModel) viewCard(p catalog.Product, selected bool) string {
	name := lipgloss.NewStyle().Bold(true).Render(p.Name)
	brand := mutedStyle.Render(p.Brand)
	price := priceStyle.Render("₱" + p.Price.String())

	stock := successStyle.Render(fmt.Sprintf("In stock: %d", p.Quantity))
	if !p.InStock() {
		stock = outOfStockStyle.Render("Out of Stock")
	}

	card := lipgloss.JoinVertical(lipgloss.Left, name, brand, price, stock)
	if selected {
		return selectedCardStyle.Render(card)
	}
	return cardStyle.Render(card)
}

func (m KioskModel) viewCatalogFooter() string {
	help := FormatKey("↑/↓", "select") + " • " +
		FormatKey("←/→", "page") + " • " +
		FormatKey("enter", "add to cart") + " • " +
		FormatKey("v", "view") + " • " +
		FormatKey("c", "cart") + " • " +
		FormatKey("s", "sort") + " • " +
		FormatKey("f", "stock") + " • " +
		FormatKey("m/n", "category") + " • " +
		FormatKey("x", "clear")

	countdown := CountdownLabel("Resets in", m.idle.Remaining(time.Now()))
	return helpStyle.Render(help) + "  " + countdown
}

func (m KioskModel) viewCart() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Shopping Cart"))
	b.WriteString("\n")

	lines := m.ledger.Lines()
	if len(lines) == 0 {
		b.WriteString(mutedStyle.Render("Your cart is empty.") + "\n\n")
		b.WriteString(helpStyle.Render(FormatKey("esc", "close")))
		return boxStyle.Render(b.String())
	}

	for i, line := range lines {
		row := fmt.Sprintf("%-30s x%-3d ₱%s", line.Product.Name, line.Quantity, line.Subtotal().String())
		if i == m.cartIndex {
			b.WriteString(selectedFilterStyle.Render("▸ "+row) + "\n")
		} else {
			b.WriteString(filterStyle.Render("  "+row) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(priceStyle.Render("Total: ₱" + m.ledger.Total().String()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(
		FormatKey("↑/↓", "select") + " • " +
			FormatKey("+/-", "quantity") + " • " +
			FormatKey("d", "remove") + " • " +
			FormatKey("p", "print receipt") + " • " +
			FormatKey("esc", "close")))

	return boxStyle.Render(b.String())
}

func (m KioskModel) viewProductDetail(p catalog.Product) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("View Product"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("Brand: %s\n", p.Brand))
	b.WriteString(fmt.Sprintf("Color: %s\n", p.Color))
	b.WriteString(fmt.Sprintf("Size:  %s\n", p.Size))
	if p.InStock() {
		b.WriteString("Availability: " + successStyle.Render("In Stock") + "\n")
	} else {
		b.WriteString("Availability: " + outOfStockStyle.Render("Out of Stock") + "\n")
	}
	b.WriteString(mutedStyle.Render("Image: "+m.client.ImageURL(p.Image)) + "\n\n")
	b.WriteString(priceStyle.Render("₱" + p.Price.String()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(
		FormatKey("enter", "add to cart") + " • " + FormatKey("esc", "close")))
	return boxStyle.Render(b.String())
}

func (m KioskModel) viewFeedback() string {
	if m.feedback == nil {
		return m.center(boxStyle.Render(mutedStyle.Render("Preparing feedback...")))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Thank You"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Proceed to the Cashier"))
	b.WriteString("\n\n")
	b.WriteString("How was your experience?\n\n")
	b.WriteString(Stars(m.feedback.Rating()))
	b.WriteString("\n\n")

	switch m.feedback.State() {
	case feedback.StateSubmitting:
		b.WriteString(infoStyle.Render("Submitting your rating..."))
	default:
		b.WriteString(helpStyle.Render(FormatKey("1-5", "rate your visit")))
		b.WriteString("\n")
		b.WriteString(CountdownLabel("Auto-submit in", m.feedback.Remaining(time.Now())))
	}

	return m.center(boxStyle.Render(b.String()))
}

func (m KioskModel) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// overlay draws a modal centered over the (dimmed-away) screen.
func (m KioskModel) overlay(_, modal string) string {
	return m.center(modal)
}

func sortLabel(key catalog.SortKey) string {
	switch key {
	case catalog.SortNameDesc:
		return "Name Descending"
	case catalog.SortPriceAsc:
		return "Price Low to High"
	case catalog.SortPriceDesc:
		return "Price High to Low"
	default:
		return "Name Ascending"
	}
}

// Run starts the kiosk UI full screen.
func Run(deps Deps) error {
	p := tea.NewProgram(NewKioskModel(deps), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
