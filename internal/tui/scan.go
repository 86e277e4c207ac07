package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cnleo/bumphook/internal/discovery"
)

var (
	scanSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	scanDoneStyle    = lipgloss.NewStyle().Margin(1, 2)
	scanErrStyle     = lipgloss.NewStyle().Margin(1, 2)
	currentDirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	checkMark        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
)

// ScanTUI renders a live progress display while a discovery scan runs.
type ScanTUI struct {
	svc *discovery.Service
	p   *tea.Program
	w   io.Writer
}

// NewScanTUI wires a ScanTUI to the given discovery service.
func NewScanTUI(w io.Writer, svc *discovery.Service) *ScanTUI {
	s := &ScanTUI{
		svc: svc,
		w:   w,
	}

	s.svc.Subscribe(s.broadcastEvent)

	return s
}

func (s *ScanTUI) broadcastEvent(evt any) {
	if s.p != nil {
		s.p.Send(evt)
	}
}

// Run executes the scan while rendering progress and returns its result.
func (s *ScanTUI) Run(ctx context.Context, root string, maxDepth int) (*discovery.Result, error) {
	s.p = tea.NewProgram(newScanModel(), tea.WithOutput(s.w))

	var (
		result  *discovery.Result
		scanErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, scanErr = s.svc.Scan(ctx, root, maxDepth)
		s.broadcastEvent(discovery.EventScanDone{Err: scanErr})
	}()

	if _, err := s.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}
	<-done

	if scanErr != nil {
		return nil, scanErr
	}

	return result, nil
}

type scanModel struct {
	err        error
	currentDir string
	spinner    spinner.Model
	found      int
	width      int
	mu         sync.RWMutex
	done       bool
}

func newScanModel() *scanModel {
	s := spinner.New()
	s.Style = scanSpinnerStyle

	return &scanModel{
		spinner: s,
		mu:      sync.RWMutex{},
	}
}

func (m *scanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

//nolint:ireturn // Third-party.
func (m *scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}

	case discovery.EventScanningDir:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.currentDir = string(msg)

	case discovery.EventCandidateFound:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.found++
		c := discovery.Candidate(msg)

		return m, tea.Printf("%s %s (%s)", checkMark, c.RelPath, c.Version)

	case discovery.EventScanDone:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.done = true
		m.err = msg.Err

		return m, tea.Sequence(finalPause(), tea.Quit)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *scanModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		errMsg := strings.Trim(fmt.Sprintf("%v", m.err), "\r\n")

		return scanErrStyle.Width(max(0, m.width-2)).Render(errMsg + "\n")
	}

	if m.done {
		return scanDoneStyle.Render(fmt.Sprintf("Done! Found %d version sources.\n", m.found))
	}

	spin := m.spinner.View() + " "
	dir := m.currentDir
	if dir == "" || dir == "." {
		dir = "project root"
	}
	info := "Scanning " + currentDirStyle.Render(dir)

	cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
	gap := strings.Repeat(" ", cellsRemaining)

	return spin + info + gap + "\n"
}

// finalPause keeps the last frame on screen briefly so pending prints
// flush before quit.
func finalPause() tea.Cmd {
	return tea.Tick(time.Millisecond*500, func(_ time.Time) tea.Msg {
		return nil
	})
}
