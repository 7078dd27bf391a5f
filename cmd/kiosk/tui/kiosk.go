package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/marshallshelly/storekiosk/cmd/kiosk/ops"
	"github.com/marshallshelly/storekiosk/pkg/api"
	"github.com/marshallshelly/storekiosk/pkg/cart"
	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/checkout"
	"github.com/marshallshelly/storekiosk/pkg/config"
	"github.com/marshallshelly/storekiosk/pkg/feedback"
	"github.com/marshallshelly/storekiosk/pkg/health"
	"github.com/marshallshelly/storekiosk/pkg/idle"
	"github.com/marshallshelly/storekiosk/pkg/metrics"
	"github.com/marshallshelly/storekiosk/pkg/session"
)

// Mode represents the current screen of the kiosk UI.
type Mode int

const (
	ModeLoading Mode = iota
	ModeCatalog
	ModeFeedback
	ModeScreensaver
	ModeOffline
)

// String returns the mode name as published on the ops board.
func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeCatalog:
		return "catalog"
	case ModeFeedback:
		return "feedback"
	case ModeScreensaver:
		return "screensaver"
	case ModeOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Deps are the wired collaborators the UI needs.
type Deps struct {
	Config  *config.Config
	Client  *api.Client
	Log     *logrus.Entry
	Metrics *metrics.KioskMetrics
	Board   *ops.Board
}

// KioskModel is the root Bubbletea model for the kiosk.
type KioskModel struct {
	cfg     *config.Config
	client  *api.Client
	log     *logrus.Entry
	metrics *metrics.KioskMetrics
	board   *ops.Board

	mode      Mode
	sess      *session.Session
	store     *catalog.Store
	viewState catalog.ViewState
	ledger    *cart.Ledger
	checkout  *checkout.Flow
	feedback  *feedback.Flow
	idle      *idle.Controller
	monitor   *health.Monitor

	search      textinput.Model
	notice      Notice
	noticeSeq   int
	cartOpen    bool
	cartIndex   int
	productOpen bool
	gridIndex   int

	// gen guards async results against a session reload; flowGen guards
	// checkout/feedback results against an idle reset. A response carrying a
	// stale generation is dropped instead of mutating torn-down state.
	gen     int
	flowGen int

	bootErr       error
	width, height int
}

// NewKioskModel builds the initial model.
func NewKioskModel(deps Deps) KioskModel {
	search := textinput.New()
	search.Placeholder = "Search products..."
	search.CharLimit = 64
	search.Width = 32

	return KioskModel{
		cfg:       deps.Config,
		client:    deps.Client,
		log:       deps.Log,
		metrics:   deps.Metrics,
		board:     deps.Board,
		mode:      ModeLoading,
		store:     catalog.NewStore(),
		viewState: catalog.NewViewState(),
		ledger:    cart.NewLedger(),
		checkout:  checkout.NewFlow(),
		idle:      idle.NewController(deps.Config.IdleTimeout, time.Now()),
		monitor:   health.NewMonitor(),
		search:    search,
	}
}

// Init starts the boot sequence and the ambient timers.
func (m KioskModel) Init() tea.Cmd {
	return tea.Batch(
		m.bootCmd(m.gen),
		m.idleTick(),
		m.healthTick(),
		m.refreshTick(),
	)
}

// Messages
type bootMsg struct {
	gen      int
	sess     *session.Session
	products []catalog.Product
	main     []catalog.MainCategory
	sub      []catalog.SubCategory
	err      error
}

type catalogMsg struct {
	gen      int
	products []catalog.Product
	main     []catalog.MainCategory
	sub      []catalog.SubCategory
	err      error
}

type printResultMsg struct {
	gen     int
	flowGen int
	orderID string
	err     error
}

type feedbackResultMsg struct {
	gen     int
	flowGen int
	rating  int
	auto    bool
	err     error
}

type pingResultMsg struct{ ok bool }

type (
	idleTickMsg     time.Time
	refreshTickMsg  time.Time
	healthTickMsg   time.Time
	rotateTickMsg   time.Time
	feedbackTickMsg time.Time
)

type noticeExpiredMsg struct{ seq int }

type bootRetryMsg struct{ gen int }

// bootRetryDelay paces re-boot attempts after a failed boot. Connectivity
// outages are handled separately by the health monitor; this covers backend
// errors (a 500 on login, a bad catalog payload) while pings still succeed.
const bootRetryDelay = 5 * time.Second

// Commands
func (m KioskModel) bootCmd(gen int) tea.Cmd {
	client, cfg := m.client, m.cfg
	return func() tea.Msg {
		ctx := context.Background()

		token, err := client.Login(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return bootMsg{gen: gen, err: err}
		}
		sess, err := session.New(token)
		if err != nil {
			return bootMsg{gen: gen, err: err}
		}

		products, err := client.Products(ctx, sess, api.ProductFilter{})
		if err != nil {
			return bootMsg{gen: gen, err: err}
		}
		main, err := client.MainCategories(ctx, sess)
		if err != nil {
			return bootMsg{gen: gen, err: err}
		}
		sub, err := client.SubCategories(ctx, sess)
		if err != nil {
			return bootMsg{gen: gen, err: err}
		}

		return bootMsg{gen: gen, sess: sess, products: products, main: main, sub: sub}
	}
}

func (m KioskModel) refreshCmd(gen int) tea.Cmd {
	client, sess := m.client, m.sess
	return func() tea.Msg {
		ctx := context.Background()

		products, err := client.Products(ctx, sess, api.ProductFilter{})
		if err != nil {
			return catalogMsg{gen: gen, err: err}
		}
		main, err := client.MainCategories(ctx, sess)
		if err != nil {
			return catalogMsg{gen: gen, err: err}
		}
		sub, err := client.SubCategories(ctx, sess)
		if err != nil {
			return catalogMsg{gen: gen, err: err}
		}

		return catalogMsg{gen: gen, products: products, main: main, sub: sub}
	}
}

func (m KioskModel) printCmd(order api.Order) tea.Cmd {
	client, sess, mtr := m.client, m.sess, m.metrics
	gen, flowGen := m.gen, m.flowGen
	return func() tea.Msg {
		start := time.Now()
		orderID, err := client.PrintOrder(context.Background(), sess, order)
		mtr.ObserveAPICall("print-receipt", time.Since(start))
		return printResultMsg{gen: gen, flowGen: flowGen, orderID: orderID, err: err}
	}
}

func (m KioskModel) submitFeedbackCmd(orderID string, rating int, auto bool) tea.Cmd {
	client, sess, mtr := m.client, m.sess, m.metrics
	gen, flowGen := m.gen, m.flowGen
	return func() tea.Msg {
		start := time.Now()
		err := client.SubmitFeedback(context.Background(), sess, orderID, rating)
		mtr.ObserveAPICall("feedback", time.Since(start))
		return feedbackResultMsg{gen: gen, flowGen: flowGen, rating: rating, auto: auto, err: err}
	}
}

func (m KioskModel) pingCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return pingResultMsg{ok: client.Ping(context.Background()) == nil}
	}
}

func (m KioskModel) bootRetry(gen int) tea.Cmd {
	return tea.Tick(bootRetryDelay, func(time.Time) tea.Msg { return bootRetryMsg{gen: gen} })
}

func (m KioskModel) idleTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return idleTickMsg(t) })
}

func (m KioskModel) refreshTick() tea.Cmd {
	return tea.Tick(m.cfg.CatalogRefresh, func(t time.Time) tea.Msg { return refreshTickMsg(t) })
}

func (m KioskModel) healthTick() tea.Cmd {
	return tea.Tick(m.cfg.HealthInterval, func(t time.Time) tea.Msg { return healthTickMsg(t) })
}

func (m KioskModel) rotateTick() tea.Cmd {
	return tea.Tick(m.cfg.ScreensaverSpin, func(t time.Time) tea.Msg { return rotateTickMsg(t) })
}

func (m KioskModel) feedbackTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return feedbackTickMsg(t) })
}

func (m *KioskModel) showNotice(text string, level NoticeLevel) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	dur := noticeDuration(level)
	m.notice = Notice{Text: text, Level: level, seq: seq, until: time.Now().Add(dur)}
	return tea.Tick(dur, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

// resetTransientState is the idle-timeout side effect: filters back to
// defaults, cart emptied, overlays closed, any in-flight flow result
// invalidated.
func (m *KioskModel) resetTransientState() {
	m.viewState.Reset()
	m.search.SetValue("")
	m.search.Blur()
	m.ledger.Clear()
	m.metrics.SetCartSize(0)
	m.cartOpen = false
	m.productOpen = false
	m.gridIndex = 0
	m.cartIndex = 0
	m.checkout = checkout.NewFlow()
	m.feedback = nil
	m.flowGen++
}

func (m *KioskModel) setMode(mode Mode) {
	m.mode = mode
	m.board.SetMode(mode.String())
}

// page derives the catalog page for the current view state.
func (m KioskModel) page() catalog.ViewPage {
	return catalog.View(m.store.Products(), m.store.SubCategories(), m.viewState, m.cfg.PageSize)
}

// Update handles messages.
func (m KioskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if woke := m.idle.Touch(time.Now()); woke {
			m.metrics.ScreensaverWoke()
			m.wakeUp()
			return m, nil // the waking key is swallowed
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if woke := m.idle.Touch(time.Now()); woke {
			m.metrics.ScreensaverWoke()
			m.wakeUp()
		}
		return m, nil

	case bootMsg:
		return m.handleBoot(msg)

	case catalogMsg:
		return m.handleCatalogRefresh(msg)

	case printResultMsg:
		return m.handlePrintResult(msg)

	case feedbackResultMsg:
		return m.handleFeedbackResult(msg)

	case pingResultMsg:
		return m.handlePing(msg)

	case idleTickMsg:
		return m.handleIdleTick(time.Time(msg))

	case refreshTickMsg:
		if m.sess != nil && m.monitor.Online() {
			return m, tea.Batch(m.refreshCmd(m.gen), m.refreshTick())
		}
		return m, m.refreshTick()

	case healthTickMsg:
		return m, tea.Batch(m.pingCmd(), m.healthTick())

	case rotateTickMsg:
		if m.mode != ModeScreensaver {
			return m, nil // rotation chain stops on wake
		}
		m.idle.AdvanceFrame()
		return m, m.rotateTick()

	case feedbackTickMsg:
		return m.handleFeedbackTick(time.Time(msg))

	case bootRetryMsg:
		if msg.gen != m.gen || m.sess != nil {
			return m, nil // a newer boot already took over
		}
		return m, m.bootCmd(m.gen)

	case noticeExpiredMsg:
		if msg.seq == m.notice.seq {
			m.notice = Notice{}
		}
		return m, nil
	}

	return m, nil
}

func (m *KioskModel) wakeUp() {
	if m.mode != ModeScreensaver {
		return
	}
	if !m.monitor.Online() {
		m.setMode(ModeOffline)
		return
	}
	if m.sess == nil {
		m.setMode(ModeLoading)
		return
	}
	m.setMode(ModeCatalog)
}

func (m KioskModel) handleBoot(msg bootMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.bootErr = msg.err
		m.log.WithError(msg.err).Error("boot failed, retrying")
		m.metrics.APIError("boot")
		return m, m.bootRetry(msg.gen)
	}

	m.bootErr = nil
	m.sess = msg.sess
	m.store.ReplaceProducts(msg.products)
	m.store.ReplaceCategories(msg.main, msg.sub)
	m.log.WithFields(logrus.Fields{
		"kiosk_id": m.sess.KioskID,
		"products": len(msg.products),
	}).Info("session established")

	if m.mode == ModeLoading {
		m.setMode(ModeCatalog)
	}
	return m, m.showNotice("Login successful!", NoticeSuccess)
}

func (m KioskModel) handleCatalogRefresh(msg catalogMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil // response from a torn-down session
	}
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("catalog refresh failed")
		m.metrics.APIError("products")
		return m, nil
	}

	// Wholesale replacement: last write wins, even right after an idle reset.
	m.store.ReplaceProducts(msg.products)
	m.store.ReplaceCategories(msg.main, msg.sub)
	return m, nil
}

func (m KioskModel) handlePing(msg pingResultMsg) (tea.Model, tea.Cmd) {
	m.metrics.SetBackendUp(msg.ok)
	m.board.SetBackendOnline(msg.ok)

	switch m.monitor.Observe(msg.ok) {
	case health.EventWentOffline:
		m.log.Warn("backend unreachable, degrading to offline notice")
		m.setMode(ModeOffline)
		return m, nil
	case health.EventRecovered:
		// One reload per outage; the monitor guarantees this fires once.
		m.log.Info("backend recovered, reloading")
		m.gen++
		m.resetTransientState()
		m.setMode(ModeLoading)
		return m, m.bootCmd(m.gen)
	}
	return m, nil
}

func (m KioskModel) handleIdleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.mode == ModeCatalog || m.mode == ModeFeedback {
		if m.idle.Tick(now) {
			m.resetTransientState()
			m.metrics.ScreensaverSlept()
			m.setMode(ModeScreensaver)
			m.log.Info("idle timeout, entering screensaver")
			return m, tea.Batch(m.idleTick(), m.rotateTick())
		}
	}
	return m, m.idleTick()
}

func (m KioskModel) handleFeedbackTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.mode != ModeFeedback || m.feedback == nil {
		return m, nil
	}
	if rating, fire := m.feedback.DeadlineExpired(now); fire {
		m.log.WithField("rating", rating).Info("feedback deadline reached, auto-submitting")
		return m, tea.Batch(
			m.submitFeedbackCmd(m.feedback.OrderID(), rating, true),
			m.feedbackTick(),
		)
	}
	return m, m.feedbackTick()
}

func (m KioskModel) handlePrintResult(msg printResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || msg.flowGen != m.flowGen {
		return m, nil // checkout was torn down while the call was in flight
	}

	if msg.err != nil {
		m.checkout.Fail()
		m.checkout.Reset()
		m.metrics.OrderFailed()
		m.log.WithError(msg.err).Error("print order failed")
		return m, m.showNotice("There was an error printing the receipt. Please try again.", NoticeError)
	}

	m.checkout.Succeed(m.ledger, msg.orderID)
	m.metrics.OrderPrinted()
	m.metrics.SetCartSize(0)
	m.cartOpen = false

	flow, err := feedback.NewFlow(msg.orderID, m.cfg.FeedbackDefaultRating, m.cfg.FeedbackDeadline, time.Now())
	if err != nil {
		// Backend confirmed the print but returned no order id; feedback
		// cannot be correlated, so skip straight back to the catalog.
		m.checkout.Reset()
		m.log.WithError(err).Error("cannot start feedback flow")
		return m, m.showNotice("Your receipt has been printed successfully.", NoticeSuccess)
	}

	m.feedback = flow
	m.checkout.Reset()
	m.setMode(ModeFeedback)
	return m, tea.Batch(
		m.showNotice("Your receipt has been printed successfully.", NoticeSuccess),
		m.feedbackTick(),
	)
}

func (m KioskModel) handleFeedbackResult(msg feedbackResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || msg.flowGen != m.flowGen {
		return m, nil
	}
	if m.feedback == nil {
		return m, nil
	}

	if msg.err != nil {
		m.feedback.Fail()
		m.log.WithError(msg.err).Error("feedback submission failed")
		return m, m.showNotice("There was an error submitting your feedback. Please try again.", NoticeError)
	}

	m.feedback.Succeed()
	source := "manual"
	if msg.auto {
		source = "auto"
	}
	m.metrics.FeedbackSubmitted(source)
	m.log.WithFields(logrus.Fields{
		"rating":       msg.rating,
		"satisfaction": feedback.Satisfaction(msg.rating),
		"source":       source,
	}).Info("feedback submitted")

	// Back to the catalog root; this re-runs session setup and the initial
	// catalog fetch, same as the first boot.
	m.gen++
	m.resetTransientState()
	m.setMode(ModeLoading)
	return m, tea.Batch(
		m.showNotice("Thank you!", NoticeSuccess),
		m.bootCmd(m.gen),
	)
}
