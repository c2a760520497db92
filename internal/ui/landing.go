package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spectra-health/spectra/internal/analytics"
	"github.com/spectra-health/spectra/internal/content"
	"github.com/spectra-health/spectra/internal/controller"
	"github.com/spectra-health/spectra/internal/emoji"
	"github.com/spectra-health/spectra/internal/logger"
	"github.com/spectra-health/spectra/internal/ui/components"
)

// DefaultPixelsPerLine is how many scroll pixels one terminal line stands for
const DefaultPixelsPerLine = 20

const (
	headerHeight    = 2
	maxContentWidth = 100
	wheelLines      = 3
)

// Options configures the landing model
type Options struct {
	PixelsPerLine int
	Controller    controller.Options
	Clock         func() time.Time
	Logger        *logger.Logger
}

// DefaultOptions returns the landing defaults
func DefaultOptions() Options {
	return Options{
		PixelsPerLine: DefaultPixelsPerLine,
		Controller:    controller.DefaultOptions(),
	}
}

// LandingModel renders the landing experience and forwards every
// interaction to the controller.
type LandingModel struct {
	ctrl   *controller.Controller
	page   *content.Page
	opts   Options
	log    *logger.Logger
	keys   KeyMap
	help   help.Model
	styles *Styles
	colors components.Colors

	viewport viewport.Model
	surface  *viewportSurface
	form     *components.CheckoutForm
	dialog   *components.Dialog

	featureStarts []int

	width    int
	height   int
	ready    bool
	quitting bool
	ticking  bool
}

// NewLandingModel creates the model and its controller. Nothing is
// recorded until Init.
func NewLandingModel(page *content.Page, sink analytics.Sink, sched controller.Scheduler, opts Options) *LandingModel {
	if page == nil {
		page = content.Default()
	}
	if opts.PixelsPerLine <= 0 {
		opts.PixelsPerLine = DefaultPixelsPerLine
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	m := &LandingModel{
		page:   page,
		opts:   opts,
		log:    log,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: GetStyles(),
	}
	m.colors = colorsFor(m.styles.Theme)
	m.viewport = viewport.New(80, 20)
	m.surface = &viewportSurface{vp: &m.viewport, pixelsPerLine: opts.PixelsPerLine}

	ctrlOpts := []controller.Option{
		controller.WithOptions(opts.Controller),
		controller.WithLogger(log),
		controller.WithRevealListener(m.refresh),
	}
	if opts.Clock != nil {
		ctrlOpts = append(ctrlOpts, controller.WithClock(opts.Clock))
	}
	m.ctrl = controller.New(m.surface, sink, sched, ctrlOpts...)
	m.applyPage()

	return m
}

// Controller exposes the view controller
func (m *LandingModel) Controller() *controller.Controller {
	return m.ctrl
}

// Page returns the copy being rendered
func (m *LandingModel) Page() *content.Page {
	return m.page
}

// Form returns the checkout form
func (m *LandingModel) Form() *components.CheckoutForm {
	return m.form
}

// FeatureAnimation returns the entrance animation of technology card i
// at the current scroll position.
func (m *LandingModel) FeatureAnimation(i int) controller.AnimationParams {
	start := 0
	if i >= 0 && i < len(m.featureStarts) {
		start = m.featureStarts[i]
	}
	return m.ctrl.ComputeAnimation(featureID(i), start)
}

// Close ends the session. It is safe to call more than once.
func (m *LandingModel) Close() {
	m.ctrl.Close()
}

// Init records the first page view and starts the stat reveal
func (m *LandingModel) Init() tea.Cmd {
	m.ctrl.Start()
	m.refresh()
	return nil
}

// Update handles messages and navigation
func (m *LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case scheduledMsg:
		if msg.fn != nil {
			msg.fn()
		}
		return m, nil
	case contentReloadMsg:
		return m.handleContentReload(msg)
	case tickMsg:
		return m.handleTick()
	}

	return m, nil
}

// View renders the landing model
func (m *LandingModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	if m.quitting {
		return m.styles.Muted.Render("Thanks for visiting " + emoji.GetEmoji("pulse"))
	}

	if m.ctrl.ModalOpen(controller.ModalNotLaunched) {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.Render())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *LandingModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.resize()
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *LandingModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.ModalOpen(controller.ModalNotLaunched) {
		return m.handleDialogKey(msg)
	}
	if m.typing() {
		return m.handleTypingKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Primary):
		return m.handlePrimary()
	case key.Matches(msg, m.keys.Back):
		return m.handleBack()
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.viewport.Height)
	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(m.form.Next)
	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(m.form.Prev)
	}
	return m, nil
}

// handleTypingKey handles keys while a checkout field has focus. Letters
// go to the field, so only control keys navigate.
func (m *LandingModel) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.handleQuit()
	case "esc":
		return m.handleBack()
	case "enter", "tab", "down":
		m.moveFocus(m.form.Next)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(m.form.Prev)
		return m, nil
	}

	cmd, events := m.form.Update(msg)
	m.trackFields(events)
	m.refresh()
	return m, cmd
}

// handleDialogKey handles keys while the not-launched notice is showing
func (m *LandingModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Primary), key.Matches(msg, m.keys.Back):
		m.ctrl.CloseModal(controller.ModalNotLaunched)
		m.form.Reset()
		m.refresh()
	}
	return m, nil
}

// handlePrimary activates the main call to action of the current page
func (m *LandingModel) handlePrimary() (tea.Model, tea.Cmd) {
	switch m.ctrl.State() {
	case controller.Home:
		m.ctrl.TransitionTo(controller.Detail, controller.ControlLearnMore)
	case controller.Detail:
		m.ctrl.TransitionTo(controller.Checkout, controller.ControlReserve)
		m.form.Reset()
		m.trackFields(m.form.FocusFirst())
	case controller.Checkout:
		if m.form.OnSubmit() {
			return m.handleSubmit()
		}
		m.trackFields(m.form.Next())
	}
	m.refresh()
	return m, nil
}

// handleSubmit ends every pre-order with the not-launched notice
func (m *LandingModel) handleSubmit() (tea.Model, tea.Cmd) {
	m.trackFields(m.form.Blur())
	m.ctrl.Click(controller.ControlSubmitPreorder)
	m.ctrl.OpenModal(controller.ModalNotLaunched)
	m.dialog.Spinner.Frame = 0
	return m, m.startTicking()
}

// handleBack returns to the previous page
func (m *LandingModel) handleBack() (tea.Model, tea.Cmd) {
	switch m.ctrl.State() {
	case controller.Detail:
		m.ctrl.TransitionTo(controller.Home, controller.ControlReturnHome)
	case controller.Checkout:
		m.trackFields(m.form.Blur())
		m.ctrl.TransitionTo(controller.Detail, controller.ControlBack)
	}
	m.refresh()
	return m, nil
}

// handleQuit handles quit commands
func (m *LandingModel) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// handleMouse scrolls on wheel events
func (m *LandingModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.AnyModalOpen() {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelLines)
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelLines)
	}
	return m, nil
}

// handleContentReload swaps the copy in place
func (m *LandingModel) handleContentReload(msg contentReloadMsg) (tea.Model, tea.Cmd) {
	if msg.page == nil {
		return m, nil
	}
	m.page = msg.page
	m.applyPage()
	if m.ctrl.State() == controller.Checkout {
		m.trackFields(m.form.FocusFirst())
	}
	m.log.Debug("landing copy replaced")
	m.refresh()
	return m, nil
}

// handleTick animates the dialog spinner while it is showing
func (m *LandingModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.ctrl.ModalOpen(controller.ModalNotLaunched) {
		m.ticking = false
		return m, nil
	}
	m.dialog.Spinner.Tick()
	return m, tick()
}

func (m *LandingModel) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *LandingModel) typing() bool {
	return m.ctrl.State() == controller.Checkout && m.form.FieldFocused()
}

func (m *LandingModel) moveFocus(move func() []components.FieldEvent) {
	if m.ctrl.State() != controller.Checkout {
		return
	}
	m.trackFields(move())
	m.refresh()
}

func (m *LandingModel) trackFields(events []components.FieldEvent) {
	for _, e := range events {
		m.ctrl.TrackField(e.Field, e.Action)
	}
}

// scrollBy moves the viewport and reports the new position
func (m *LandingModel) scrollBy(lines int) {
	m.viewport.SetYOffset(m.viewport.YOffset + lines)
	m.ctrl.OnScroll(m.surface.position())
	m.refresh()
}

// applyPage rebuilds the widgets that hold copy
func (m *LandingModel) applyPage() {
	m.form = components.NewCheckoutForm(m.page.Checkout.Fields, m.page.Checkout.Submit).SetColors(m.colors)
	m.dialog = components.NewDialog(m.page.Dialog.Message, m.page.Dialog.Action).SetColors(m.colors)
}

// resize fits the viewport between header and footer
func (m *LandingModel) resize() {
	if !m.ready {
		return
	}
	m.help.Width = m.width
	footer := lipgloss.Height(m.renderFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-footer, 1)
	m.refresh()
}

// refresh re-renders the document for the current state
func (m *LandingModel) refresh() {
	if !m.ready {
		return
	}

	var doc string
	switch m.ctrl.State() {
	case controller.Detail:
		doc = m.renderDetail()
	case controller.Checkout:
		doc = m.renderCheckout()
	default:
		doc = m.renderHome()
	}

	m.viewport.SetContent(doc)
	m.ctrl.SetScrollLimit(m.surface.maxLines() * m.opts.PixelsPerLine)
}

func (m *LandingModel) contentWidth() int {
	return max(min(m.width-4, maxContentWidth), 20)
}

func (m *LandingModel) center(block string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
}

func (m *LandingModel) renderHeader() string {
	brand := m.styles.Brand.Render(emoji.GetEmoji("pulse") + " spectra")

	pages := []controller.ViewState{controller.Home, controller.Detail, controller.Checkout}
	nav := make([]string, 0, len(pages))
	for _, p := range pages {
		label := strings.ToUpper(p.String()[:1]) + p.String()[1:]
		if p == m.ctrl.State() {
			nav = append(nav, m.styles.NavActive.Render(label))
		} else {
			nav = append(nav, m.styles.NavItem.Render(label))
		}
	}
	navBar := lipgloss.JoinHorizontal(lipgloss.Top, nav...)

	gap := max(m.width-lipgloss.Width(brand)-lipgloss.Width(navBar)-2, 1)
	line := " " + brand + strings.Repeat(" ", gap) + navBar
	rule := m.styles.Rule.Render(strings.Repeat("─", max(m.width, 0)))

	return lipgloss.JoinVertical(lipgloss.Left, line, rule)
}

func (m *LandingModel) renderFooter() string {
	percent := m.styles.Muted.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	helpView := m.help.View(m.keys)
	gap := max(m.width-lipgloss.Width(helpView)-lipgloss.Width(percent)-2, 1)
	return " " + helpView + strings.Repeat(" ", gap) + percent
}

func (m *LandingModel) renderHome() string {
	w := m.contentWidth()
	hero := m.page.Hero

	title := m.styles.Title.Width(w).Render(hero.Title)
	subtitle := m.styles.Subtitle.Width(min(w, 72)).Render(hero.Subtitle)
	button := m.styles.Button.Render(hero.Action + " " + emoji.GetEmoji("arrow"))

	grid := components.NewStatGrid(w)
	for i, s := range m.page.Stats {
		grid.AddCard(components.NewStatCard(s.Value, s.Highlight, s.Description).
			SetColors(m.colors).
			SetRevealed(m.statRevealed(i)))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		components.NewMosaic(m.width, 2).SetColors(m.colors).Render(),
		"",
		m.center(title),
		"",
		m.center(subtitle),
		"",
		m.center(button),
		"",
		m.center(grid.Render()),
		"",
	)
}

// statRevealed maps stat cards onto the reveal. Cards past the reveal
// count appear together with the last revealed one.
func (m *LandingModel) statRevealed(i int) bool {
	count := m.opts.Controller.RevealCount
	if count <= 0 {
		return true
	}
	return m.ctrl.IsRevealed(min(i, count-1))
}

func (m *LandingModel) renderDetail() string {
	w := m.contentWidth()
	tech := m.page.Technology
	ppl := float64(m.opts.PixelsPerLine)
	maxOffsetLines := int(math.Ceil(m.opts.Controller.Curve.MaxOffset / ppl))

	back := m.styles.Muted.Render(emoji.GetEmoji("back") + " " + tech.Back + " (esc)")
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		" "+back,
		"",
		m.center(m.styles.Title.Width(w).Render(tech.Title)),
		"",
		m.center(m.styles.Subtitle.Width(min(w, 72)).Render(tech.Subtitle)),
		"",
	)

	row := components.NewFeatureRow(w)
	cards := make([]*components.FeatureCard, len(tech.Features))
	for i, f := range tech.Features {
		cards[i] = components.NewFeatureCard(emoji.GetEmoji(f.Icon), f.Title, f.Description).
			SetColors(m.colors).
			SetAnimation(1, 0, maxOffsetLines)
		row.AddCard(cards[i])
	}
	preorder := m.renderPreorder(w)

	// Card height does not depend on the animation, so the layout can be
	// measured before the real render.
	rowTop := lipgloss.Height(header)
	total := rowTop + lipgloss.Height(row.Render()) + 1 + lipgloss.Height(preorder) + 1
	m.featureStarts = m.featureThresholds(rowTop, row.Offsets(), total)

	for i, card := range cards {
		p := m.ctrl.ComputeAnimation(featureID(i), m.featureStarts[i])
		card.SetAnimation(p.Opacity, int(math.Round(p.OffsetPixels/ppl)), maxOffsetLines)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.center(row.Render()),
		"",
		m.center(preorder),
		"",
	)
}

// featureThresholds returns the scroll position at which each card starts
// to appear: when its top reaches the bottom of the viewport, but early
// enough to finish before the document runs out.
func (m *LandingModel) featureThresholds(rowTop int, offsets []int, totalLines int) []int {
	ppl := m.opts.PixelsPerLine
	rng := m.opts.Controller.Curve.Range
	if rng <= 0 {
		rng = controller.DefaultAnimationRange
	}
	maxScroll := max(totalLines-m.viewport.Height, 0) * ppl

	starts := make([]int, len(offsets))
	for i, off := range offsets {
		starts[i] = min((rowTop+off-m.viewport.Height)*ppl, maxScroll-rng)
	}
	return starts
}

func (m *LandingModel) renderPreorder(w int) string {
	pre := m.page.Preorder
	theme := m.styles.Theme
	panelWidth := min(w, 72)

	button := lipgloss.NewStyle().
		Foreground(theme.Inverse).
		Background(theme.InverseFg).
		Bold(true).
		Padding(0, 3).
		Render(emoji.GetEmoji("preorder") + " " + pre.Action)
	body := lipgloss.NewStyle().Width(panelWidth - 8).Align(lipgloss.Center).Render(pre.Body)

	return m.styles.InversePanel.Width(panelWidth).Render(lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(pre.Title),
		"",
		body,
		"",
		button,
	))
}

func (m *LandingModel) renderCheckout() string {
	w := m.contentWidth()
	co := m.page.Checkout
	formWidth := min(w, 56)

	title := m.styles.Title.Render(emoji.GetEmoji("card") + " " + co.Title)
	intro := m.styles.Muted.Width(formWidth).Render(co.Intro)
	form := m.form.SetWidth(formWidth).Render()
	hint := m.styles.Muted.Render("tab/shift+tab move between fields, enter on the button to finish")

	block := lipgloss.JoinVertical(lipgloss.Left, title, "", intro, "", form, "", hint)
	return lipgloss.JoinVertical(lipgloss.Left, "", m.center(block), "")
}

func featureID(i int) string {
	return fmt.Sprintf("feature-%d", i)
}

func colorsFor(t Theme) components.Colors {
	return components.Colors{
		Foreground: t.Foreground,
		Muted:      t.Muted,
		Border:     t.Border,
		Background: t.Background,
		Accent:     t.Accent,
		Selected:   t.Selected,
		Inverse:    t.Inverse,
		InverseFg:  t.InverseFg,
	}
}
