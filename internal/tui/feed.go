// Package tui renders the interactive per-day attendance feed with
// bubbletea. It owns date selection and fetch orchestration; the actual
// view-model derivation is delegated to the dayfeed package.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldtrail/fieldtrail/internal/api"
	"github.com/fieldtrail/fieldtrail/internal/dayfeed"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2EC27E")).
			MarginBottom(1)

	timeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1D3"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	firstStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	minimalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)
)

// Config wires the feed's collaborators.
type Config struct {
	Attendance api.AttendanceFetcher
	Distance   api.DistanceFetcher
	Assembler  *dayfeed.Assembler
	Enricher   *dayfeed.Enricher
	// InitialDate selects the day shown first. Zero means today.
	InitialDate time.Time
}

// Model is the bubbletea model for the attendance feed screen.
type Model struct {
	cfg      Config
	err      error
	enriched []model.EnrichedRecord
	vm       dayfeed.DayViewModel
	keymap   KeyMap
	spinner  spinner.Model
	date     time.Time
	width    int
	loaded   bool
	quitting bool
}

// NewModel creates the feed model. Collaborators must be non-nil.
func NewModel(cfg Config) Model {
	if cfg.InitialDate.IsZero() {
		cfg.InitialDate = time.Now()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2EC27E"))

	return Model{
		cfg:     cfg,
		keymap:  DefaultKeyMap(),
		spinner: s,
		date:    cfg.InitialDate,
	}
}

// Run starts the feed program and blocks until the user quits.
func Run(cfg Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}

// Init kicks off the attendance fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRecords())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case recordsLoadedMsg:
		m.loaded = true
		m.err = nil
		m.enriched = m.cfg.Enricher.Enrich(msg.records)
		return m.selectDate(m.date)

	case recordsFailedMsg:
		m.loaded = true
		m.err = msg.err
		return m, nil

	case distanceLoadedMsg:
		if msg.date != m.vm.SelectedDate {
			return m, nil
		}
		m.vm = m.cfg.Assembler.Assemble(m.enriched, msg.date, msg.report, nil)
		return m, nil

	case distanceFailedMsg:
		if msg.date != m.vm.SelectedDate {
			return m, nil
		}
		m.vm = m.cfg.Assembler.Assemble(m.enriched, msg.date, nil, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.PrevDay):
		return m.selectDate(m.date.AddDate(0, 0, -1))
	case key.Matches(msg, m.keymap.NextDay):
		return m.selectDate(m.date.AddDate(0, 0, 1))
	case key.Matches(msg, m.keymap.Today):
		return m.selectDate(time.Now())
	case key.Matches(msg, m.keymap.Refresh):
		m.loaded = false
		return m, tea.Batch(m.spinner.Tick, m.loadRecords())
	}
	return m, nil
}

// selectDate switches the feed to a day, rendering it in the loading state
// until its distance report arrives.
func (m Model) selectDate(date time.Time) (tea.Model, tea.Cmd) {
	m.date = date
	dateKey := dayfeed.DateKey(date)
	m.vm = m.cfg.Assembler.Assemble(m.enriched, dateKey, nil, nil)

	if m.vm.Empty() {
		// Nothing to annotate; skip the fetch.
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.loadDistance(dateKey))
}

func (m Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.cfg.Attendance.ViewAttendance(context.Background())
		if err != nil {
			return recordsFailedMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m Model) loadDistance(date string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.cfg.Distance.CalculateDistance(context.Background(), date)
		if err != nil {
			return distanceFailedMsg{date: date, err: err}
		}
		return distanceLoadedMsg{date: date, report: report}
	}
}

// View renders the feed.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("🧭 Attendance — %s", m.date.Format("Mon, 02 Jan 2006"))))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString(m.spinner.View() + " Fetching attendance records...\n")
	case m.err != nil:
		b.WriteString(degradedStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	case m.vm.Empty():
		b.WriteString(subtleStyle.Render("No check-ins on this day."))
		b.WriteString("\n")
	default:
		m.renderDay(&b)
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("←/→ day · t today · r refresh · q quit"))
	return b.String()
}

func (m Model) renderDay(b *strings.Builder) {
	for _, r := range m.vm.OrderedRecords {
		b.WriteString(timeStyle.Render(r.DisplayTime))
		b.WriteString("  " + r.Purpose)
		if r.HasSubPurpose() {
			b.WriteString(subtleStyle.Render(" · " + r.SubPurpose))
		}
		b.WriteString("\n")

		if r.LocationName != "" {
			b.WriteString(subtleStyle.Render("    📍 " + r.LocationName))
			b.WriteString("\n")
		}

		b.WriteString("    " + m.renderAnnotation(m.vm.Annotation(r.ID)))
		b.WriteString("\n")
	}

	b.WriteString(totalStyle.Render(m.renderTotal()))
	b.WriteString("\n")

	if m.vm.DistanceDegraded() {
		b.WriteString(degradedStyle.Render("⚠️ Distance information is temporarily unavailable."))
		b.WriteString("\n")
	} else if m.vm.State == dayfeed.StateLoading {
		b.WriteString(m.spinner.View() + subtleStyle.Render(" Calculating distances..."))
		b.WriteString("\n")
	}
}

// renderAnnotation must cover every classification; an unhandled one renders
// as unavailable rather than panicking.
func (m Model) renderAnnotation(a dayfeed.Annotation) string {
	switch a.Kind {
	case dayfeed.FirstOfDay:
		return firstStyle.Render("⚑ Start of day")
	case dayfeed.DistanceKnown:
		switch {
		case a.SameLocation():
			return firstStyle.Render("Same location")
		case a.MinimalMovement:
			return minimalStyle.Render(fmt.Sprintf("%.2f km (minimal movement)", a.Distance))
		default:
			return fmt.Sprintf("%.2f km from previous visit", a.Distance)
		}
	case dayfeed.DistanceUnavailable:
		return subtleStyle.Render("Distance unavailable")
	default:
		return subtleStyle.Render("Distance unavailable")
	}
}

func (m Model) renderTotal() string {
	if !m.vm.TotalKnown {
		return "Total distance: —"
	}
	total := fmt.Sprintf("Total distance: %.2f km", m.vm.TotalDistance)
	if m.vm.SingleLocation() {
		total += " (Single location)"
	}
	return total
}
