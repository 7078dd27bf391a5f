package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/storekiosk/cmd/kiosk/ops"
	"github.com/marshallshelly/storekiosk/pkg/api"
	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/config"
	"github.com/marshallshelly/storekiosk/pkg/feedback"
	"github.com/marshallshelly/storekiosk/pkg/metrics"
	"github.com/marshallshelly/storekiosk/pkg/session"
)

func testDeps(t *testing.T) Deps {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	return Deps{
		Config: &config.Config{
			BackendURL:            "http://localhost:8000",
			RequestTimeout:        10 * time.Second,
			PageSize:              9,
			CatalogRefresh:        15 * time.Second,
			IdleTimeout:           60 * time.Second,
			ScreensaverSpin:       5 * time.Second,
			HealthInterval:        5 * time.Second,
			FeedbackDeadline:      20 * time.Second,
			FeedbackDefaultRating: 3,
		},
		Client:  api.NewClient("http://localhost:8000", 10*time.Second),
		Log:     log.WithField("component", "test"),
		Metrics: metrics.NewWithRegisterer(prometheus.NewRegistry()),
		Board:   ops.NewBoard(),
	}
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New("test-token")
	require.NoError(t, err)
	return sess
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Hex Bolt M8", Brand: "Acme", Quantity: 10, SubCategory: 1},
		{ID: 2, Name: "Washer 8mm", Brand: "Acme", Quantity: 0, SubCategory: 1},
	}
}

func bootedModel(t *testing.T) KioskModel {
	t.Helper()
	m := NewKioskModel(testDeps(t))
	next, _ := m.Update(bootMsg{
		gen:      0,
		sess:     testSession(t),
		products: testProducts(),
		main:     []catalog.MainCategory{{ID: 1, Name: "Fasteners"}},
		sub:      []catalog.SubCategory{{ID: 1, Name: "Bolts", MainCategory: 1}},
	})
	return next.(KioskModel)
}

func TestBootSuccess(t *testing.T) {
	m := bootedModel(t)

	assert.Equal(t, ModeCatalog, m.mode)
	assert.Len(t, m.store.Products(), 2)
	assert.Equal(t, "Login successful!", m.notice.Text)
	assert.Equal(t, "catalog", m.board.Snapshot("").Mode)
}

func TestBootFailureStaysLoading(t *testing.T) {
	m := NewKioskModel(testDeps(t))
	next, _ := m.Update(bootMsg{gen: 0, err: assert.AnError})
	got := next.(KioskModel)

	assert.Equal(t, ModeLoading, got.mode)
	assert.Error(t, got.bootErr)
}

func TestBootFailureSchedulesRetry(t *testing.T) {
	m := NewKioskModel(testDeps(t))

	next, cmd := m.Update(bootMsg{gen: 0, err: assert.AnError})
	got := next.(KioskModel)
	require.NotNil(t, cmd, "a failed boot must schedule a retry")
	assert.Equal(t, ModeLoading, got.mode)

	// The retry message re-issues the boot command.
	_, cmd = got.Update(bootRetryMsg{gen: 0})
	assert.NotNil(t, cmd)
}

func TestBootRetryDroppedAfterReload(t *testing.T) {
	m := NewKioskModel(testDeps(t))
	next, _ := m.Update(bootMsg{gen: 0, err: assert.AnError})
	got := next.(KioskModel)
	got.gen = 1

	_, cmd := got.Update(bootRetryMsg{gen: 0})
	assert.Nil(t, cmd, "a retry from a superseded boot must not fire")
}

func TestBootRetryDroppedOnceBooted(t *testing.T) {
	m := bootedModel(t)

	_, cmd := m.Update(bootRetryMsg{gen: m.gen})
	assert.Nil(t, cmd, "an established session must not be re-booted by a late retry")
}

func TestStaleBootDropped(t *testing.T) {
	m := bootedModel(t)
	m.gen = 2

	next, _ := m.Update(bootMsg{gen: 1, sess: testSession(t), products: nil})
	got := next.(KioskModel)

	// The stale response must not wipe the catalog.
	assert.Len(t, got.store.Products(), 2)
}

func TestCatalogRefreshLastWriteWins(t *testing.T) {
	m := bootedModel(t)

	next, _ := m.Update(catalogMsg{
		gen:      0,
		products: []catalog.Product{{ID: 3, Name: "Nut M8", Quantity: 5}},
	})
	got := next.(KioskModel)

	products := got.store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, int64(3), products[0].ID)
}

func TestIdleTimeoutResetsAndSleeps(t *testing.T) {
	m := bootedModel(t)
	require.NoError(t, m.ledger.AddOrIncrement(testProducts()[0], 2))
	m.viewState.SetSearch("bolt")
	flowGen := m.flowGen

	next, _ := m.Update(idleTickMsg(time.Now().Add(2 * time.Minute)))
	got := next.(KioskModel)

	assert.Equal(t, ModeScreensaver, got.mode)
	assert.True(t, got.ledger.Empty())
	assert.Empty(t, got.viewState.Search)
	assert.Equal(t, flowGen+1, got.flowGen)
}

func TestWakeReturnsToCatalog(t *testing.T) {
	m := bootedModel(t)
	next, _ := m.Update(idleTickMsg(time.Now().Add(2 * time.Minute)))
	m = next.(KioskModel)
	require.Equal(t, ModeScreensaver, m.mode)

	// The waking key is swallowed, not dispatched.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	got := next.(KioskModel)

	assert.Equal(t, ModeCatalog, got.mode)
	assert.False(t, got.cartOpen)
}

func TestPrintSuccessEntersFeedback(t *testing.T) {
	m := bootedModel(t)
	require.NoError(t, m.ledger.AddOrIncrement(testProducts()[0], 1))
	_, err := m.checkout.Begin(m.ledger)
	require.NoError(t, err)

	next, _ := m.Update(printResultMsg{gen: m.gen, flowGen: m.flowGen, orderID: "ORD-77"})
	got := next.(KioskModel)

	assert.Equal(t, ModeFeedback, got.mode)
	require.NotNil(t, got.feedback)
	assert.Equal(t, "ORD-77", got.feedback.OrderID())
	assert.True(t, got.ledger.Empty())
}

func TestPrintFailureKeepsCart(t *testing.T) {
	m := bootedModel(t)
	require.NoError(t, m.ledger.AddOrIncrement(testProducts()[0], 1))
	_, err := m.checkout.Begin(m.ledger)
	require.NoError(t, err)

	next, _ := m.Update(printResultMsg{gen: m.gen, flowGen: m.flowGen, err: assert.AnError})
	got := next.(KioskModel)

	assert.Equal(t, ModeCatalog, got.mode)
	assert.Equal(t, 1, got.ledger.Len())
	assert.Equal(t, NoticeError, got.notice.Level)
}

func TestStalePrintResultDropped(t *testing.T) {
	m := bootedModel(t)
	staleFlow := m.flowGen
	m.flowGen++

	next, _ := m.Update(printResultMsg{gen: m.gen, flowGen: staleFlow, orderID: "ORD-1"})
	got := next.(KioskModel)

	assert.Equal(t, ModeCatalog, got.mode)
	assert.Nil(t, got.feedback)
}

func TestFeedbackDeadlineAutoSubmits(t *testing.T) {
	m := bootedModel(t)
	flow, err := feedback.NewFlow("ORD-9", 3, time.Millisecond, time.Now().Add(-time.Second))
	require.NoError(t, err)
	m.feedback = flow
	m.setMode(ModeFeedback)

	_, cmd := m.Update(feedbackTickMsg(time.Now()))

	require.NotNil(t, cmd)
	assert.Equal(t, feedback.StateSubmitting, flow.State())
	assert.Equal(t, 3, flow.Rating())
}

func TestFeedbackSuccessReloadsSession(t *testing.T) {
	m := bootedModel(t)
	flow, err := feedback.NewFlow("ORD-9", 3, 20*time.Second, time.Now())
	require.NoError(t, err)
	require.NoError(t, flow.Choose(5))
	m.feedback = flow
	m.setMode(ModeFeedback)
	gen := m.gen

	next, _ := m.Update(feedbackResultMsg{gen: m.gen, flowGen: m.flowGen, rating: 5})
	got := next.(KioskModel)

	assert.Equal(t, ModeLoading, got.mode)
	assert.Equal(t, gen+1, got.gen)
	assert.Nil(t, got.feedback)
}

func TestPingOfflineAndRecovery(t *testing.T) {
	m := bootedModel(t)

	next, _ := m.Update(pingResultMsg{ok: false})
	got := next.(KioskModel)
	assert.Equal(t, ModeOffline, got.mode)
	assert.False(t, got.board.Snapshot("").BackendOnline)

	next, cmd := got.Update(pingResultMsg{ok: true})
	got = next.(KioskModel)
	assert.Equal(t, ModeLoading, got.mode)
	assert.NotNil(t, cmd, "recovery triggers a reload")

	// A second healthy probe must not reload again.
	gen := got.gen
	next, _ = got.Update(pingResultMsg{ok: true})
	got = next.(KioskModel)
	assert.Equal(t, gen, got.gen)
}

func TestAddToCartOutOfStock(t *testing.T) {
	m := bootedModel(t)
	m.gridIndex = 1 // Washer 8mm, quantity 0

	next, _ := m.addSelectedToCart()
	got := next.(KioskModel)

	assert.True(t, got.ledger.Empty())
	assert.Equal(t, NoticeError, got.notice.Level)
}

func TestCheckoutEmptyCartNotice(t *testing.T) {
	m := bootedModel(t)

	next, _ := m.startCheckout()
	got := next.(KioskModel)

	assert.Equal(t, "Please add items to your cart before printing.", got.notice.Text)
	assert.Equal(t, NoticeError, got.notice.Level)
}

func TestFeedbackKeyChoosesRating(t *testing.T) {
	m := bootedModel(t)
	flow, err := feedback.NewFlow("ORD-9", 3, 20*time.Second, time.Now())
	require.NoError(t, err)
	m.feedback = flow
	m.setMode(ModeFeedback)
	m.idle.Touch(time.Now())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	got := next.(KioskModel)

	require.NotNil(t, cmd)
	assert.Equal(t, feedback.StateSubmitting, got.feedback.State())
	assert.Equal(t, 4, got.feedback.Rating())
}
