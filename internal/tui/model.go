// Package tui implements an interactive bubbletea monitor rendering live
// DRO telemetry (axis positions, RPM, tick, telemetry-enabled state) and a
// host resource line, using the usual Model/Update/View/tea.Tick idiom. It
// does not show bus health counters or trace-capture state.
package tui

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	psutilcpu "github.com/shirou/gopsutil/v3/cpu"
	psutilmem "github.com/shirou/gopsutil/v3/mem"

	"github.com/tcl125/fredbridge/internal/dro"
	"github.com/tcl125/fredbridge/internal/hosttransport"
	"github.com/tcl125/fredbridge/internal/wire"
)

// maxLogLines bounds the scrollback kept for the event log viewport.
const maxLogLines = 200

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const pollInterval = 50 * time.Millisecond

type telemetryMsg struct {
	snapshot dro.Snapshot
	tick     uint32
	enabled  bool
}

type errMsg struct{ err error }

type resourceMsg struct{ line string }

type copyNoticeExpiredMsg struct{}

// Model is the monitor's bubbletea state.
type Model struct {
	Transport   hosttransport.Transport
	Calibration dro.Calibration

	snapshot     dro.Snapshot
	tick         uint32
	enabled      bool
	lastErr      error
	resourceLine string
	copyNotice   bool
	quitting     bool

	log      viewport.Model
	logLines []string
}

// NewModel returns a Model polling snapshots over tr.
func NewModel(tr hosttransport.Transport) Model {
	return Model{
		Transport:   tr,
		Calibration: dro.DefaultCalibration(),
		log:         viewport.New(60, 6),
	}
}

// Init kicks off the first snapshot poll and resource sampling tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollSnapshot(m.Transport), updateResourceData())
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Width = msg.Width - 4
		if m.log.Width < 20 {
			m.log.Width = 20
		}
		m.log.Height = 6

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "y":
			_ = clipboard.WriteAll(m.snapshotLine())
			m.copyNotice = true
			return m, startCopyNoticeTimer()
		}

	case telemetryMsg:
		m.snapshot = msg.snapshot
		m.tick = msg.tick
		m.enabled = msg.enabled
		m.lastErr = nil
		m.appendLog(fmt.Sprintf("tick=%d x=%d z=%d rpm=%d enabled=%v", msg.tick, msg.snapshot.XCounts, msg.snapshot.ZCounts, msg.snapshot.RPM, msg.enabled))
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg {
			return pollSnapshotMsg{}
		})

	case pollSnapshotMsg:
		return m, pollSnapshot(m.Transport)

	case errMsg:
		m.lastErr = msg.err
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg {
			return pollSnapshotMsg{}
		})

	case resourceMsg:
		m.resourceLine = msg.line
		return m, updateResourceData()

	case copyNoticeExpiredMsg:
		m.copyNotice = false
	}
	return m, nil
}

type pollSnapshotMsg struct{}

// View renders the current telemetry and status.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	xMM, zMM := m.Calibration.ToMM(m.snapshot)
	status := statusStyle.Render("telemetry disabled")
	if m.enabled {
		status = statusStyle.Render("telemetry enabled")
	}

	lines := []string{
		titleStyle.Render("RP2040 FRED Bridge Monitor"),
		"",
		fmt.Sprintf("%s %s", labelStyle.Render("status:"), status),
		fmt.Sprintf("%s %d", labelStyle.Render("tick:"), m.tick),
		fmt.Sprintf("%s %s", labelStyle.Render("X:"), valueStyle.Render(fmt.Sprintf("%d counts (%.3f mm)", m.snapshot.XCounts, xMM))),
		fmt.Sprintf("%s %s", labelStyle.Render("Z:"), valueStyle.Render(fmt.Sprintf("%d counts (%.3f mm)", m.snapshot.ZCounts, zMM))),
		fmt.Sprintf("%s %s", labelStyle.Render("RPM:"), valueStyle.Render(fmt.Sprintf("%d", m.snapshot.RPM))),
		"",
		labelStyle.Render(m.resourceLine),
		"",
		labelStyle.Render("event log:"),
		m.log.View(),
	}
	if m.lastErr != nil {
		lines = append(lines, "", errorStyle.Render("error: "+m.lastErr.Error()))
	}
	if m.copyNotice {
		lines = append(lines, "", statusStyle.Render("copied to clipboard"))
	}
	lines = append(lines, "", labelStyle.Render("q: quit  y: copy snapshot"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.log.SetContent(strings.Join(m.logLines, "\n"))
	m.log.GotoBottom()
}

func (m Model) snapshotLine() string {
	xMM, zMM := m.Calibration.ToMM(m.snapshot)
	return fmt.Sprintf("tick=%d x=%.3fmm z=%.3fmm rpm=%d", m.tick, xMM, zMM, m.snapshot.RPM)
}

func pollSnapshot(tr hosttransport.Transport) tea.Cmd {
	return func() tea.Msg {
		replies, err := tr.Transact(wire.SnapshotReqPacket(0))
		if err != nil {
			return errMsg{err}
		}
		for _, r := range replies {
			if r.MsgType == wire.Telemetry {
				tick, xCounts, zCounts, rpm, flags := wire.DecodeTelemetry(r)
				return telemetryMsg{
					snapshot: dro.Snapshot{XCounts: xCounts, ZCounts: zCounts, RPM: rpm},
					tick:     tick,
					enabled:  flags&0x01 != 0,
				}
			}
		}
		return errMsg{fmt.Errorf("snapshot request returned no telemetry reply")}
	}
}

func updateResourceData() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		cpuPercent, _ := psutilcpu.Percent(0, false)
		memInfo, _ := psutilmem.VirtualMemory()
		var cpu float64
		if len(cpuPercent) > 0 {
			cpu = cpuPercent[0]
		}
		line := fmt.Sprintf("CPU: %.1f%% | RAM: %.1f%% | Go: %s", cpu, memInfo.UsedPercent, runtime.Version())
		return resourceMsg{line}
	})
}

func startCopyNoticeTimer() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copyNoticeExpiredMsg{}
	})
}
