package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ascend/internal/dateutil"
	"ascend/internal/engine"
	"ascend/internal/storage"
	"ascend/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	progress *storage.Progress
	tasks    []storage.Task
	done     map[int64]bool
	day      dateutil.Key

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	progress  *storage.Progress
	tasks     []storage.Task
	done      map[int64]bool
	day       dateutil.Key
	reconcile *engine.ReconcileReport
	err       error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		done:    map[int64]bool{},
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd(true)
}

// loadCmd refreshes the board. The first load also runs day reconciliation
// so missed-day penalties are settled before anything is shown.
func (m boardModel) loadCmd(reconcile bool) tea.Cmd {
	return func() tea.Msg {
		var rep *engine.ReconcileReport
		if reconcile {
			var err error
			rep, err = m.svc.Reconcile(m.ctx)
			if err != nil {
				return loadedMsg{err: err}
			}
		}
		p, err := m.svc.Progress(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.TaskRepo().ListAll(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		done, err := m.svc.CompletedToday(m.ctx, tasks)
		if err != nil {
			return loadedMsg{err: err}
		}
		day, err := m.svc.SelectedDay(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{progress: p, tasks: tasks, done: done, day: day, reconcile: rep}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.progress = msg.progress
		m.tasks = msg.tasks
		m.done = msg.done
		m.day = msg.day
		if msg.reconcile != nil && len(msg.reconcile.PenalizedDays) > 0 {
			m.lastLog = fmt.Sprintf("Settled %d missed day(s): -%d points, -%d health.",
				len(msg.reconcile.PenalizedDays), msg.reconcile.TotalPointPenalty, msg.reconcile.TotalHealthLost)
		} else {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.LevelUp {
			m.lastLog = fmt.Sprintf("Completed %d: +%d points — %s %s!", msg.res.TaskID, msg.res.Points, ui.BadgeLevelUp, ui.RankStyle(msg.res.NewRank.Color).Render(msg.res.NewRank.Name))
		} else {
			m.lastLog = fmt.Sprintf("Completed %d: +%d points, +%d health", msg.res.TaskID, msg.res.Points, msg.res.HealthRecovered)
		}
		return m, m.loadCmd(false)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd(false)
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "enter", "c", " ":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			t := rows[m.selected]
			if m.done[t.ID] && !t.Repeatable {
				m.lastLog = "Already done today."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %d…", t.ID)
			return m, m.completeCmd(t.ID)
		}
	}
	return m, nil
}

// rows returns tasks in display order: mandatory first, then by ID.
func (m boardModel) rows() []storage.Task {
	out := make([]storage.Task, len(m.tasks))
	copy(out, m.tasks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category == string(engine.CategoryMandatory)
		}
		return out[i].ID < out[j].ID
	})
	if m.selected >= len(out) {
		m.selected = len(out) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.progress == nil {
		return "Ascend — loading…"
	}
	rank := engine.LevelFor(m.progress.TotalPoints)
	prog := engine.ProgressToNext(m.progress.TotalPoints)
	name := ui.RankStyle(rank.Color).Render(rank.Name)
	return fmt.Sprintf("Ascend | %s (Lv %d) | %d pts %s | day %s",
		name, rank.Tier, m.progress.TotalPoints, ui.ProgressBar(prog.Percent, 24), m.day)
}

func (m boardModel) renderSidebar() string {
	if m.progress == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Cultivator"}
	lines = append(lines, fmt.Sprintf("- Health %s", ui.HealthBar(m.progress.Health, m.progress.MaxHealth, 10)))
	lines = append(lines, fmt.Sprintf("- Streak %d day(s)", m.progress.Streak))
	if bonus := engine.StreakBonus(m.progress.Streak); bonus > 0 {
		lines = append(lines, fmt.Sprintf("- Streak bonus +%d", bonus))
	}
	if engine.IsHealthCritical(m.progress.Health, m.progress.MaxHealth) {
		lines = append(lines, ui.Bad.Render("- HEALTH CRITICAL"))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter/c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Tasks")

	rows := m.rows()
	if len(rows) == 0 {
		out = append(out, "(no tasks — add some with `ascend add`)")
		return strings.Join(out, "\n")
	}
	for i, t := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if m.done[t.ID] {
			mark = "[x]"
		}
		tag := ""
		if t.Category == string(engine.CategoryMandatory) {
			tag = " *"
		}
		repeat := ""
		if t.Repeatable {
			repeat = " " + ui.IconLoop
		}
		out = append(out, fmt.Sprintf("%s%s %d %s%s%s (d%d)", cursor, mark, t.ID, t.Name, tag, repeat, t.Difficulty))
	}
	out = append(out, "")
	out = append(out, "* mandatory — missing it costs points and health")
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
