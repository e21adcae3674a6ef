package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/calendar"
	"github.com/sadopc/zenflow/internal/export"
	"github.com/sadopc/zenflow/internal/store"
	"github.com/sadopc/zenflow/internal/timer"
)

// Wednesday 8 January 2025.
var testNow = time.Date(2025, time.January, 8, 9, 30, 0, 0, time.Local)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()
	return app.New(newTestStore(t), &calendar.FixedClock{T: testNow}, nil)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(newTestContainer(t), time.Second)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func keyPress(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

// ============================================================
// Timer tick chain
// ============================================================

func TestTimerChangedStartsChain(t *testing.T) {
	a := newTestApp(t)
	if err := a.c.Timer.ToggleRunning(); err != nil {
		t.Fatal(err)
	}

	a, cmd := update(t, a, timerChangedMsg{})
	if a.timerGen != 1 {
		t.Fatalf("timerGen = %d, want 1", a.timerGen)
	}
	if cmd == nil {
		t.Fatal("running timer should schedule a tick")
	}
}

func TestTimerChangedWhileStoppedSchedulesNothing(t *testing.T) {
	a := newTestApp(t)

	a, cmd := update(t, a, timerChangedMsg{})
	if cmd != nil {
		t.Fatal("stopped timer should not schedule a tick")
	}
	if a.timerGen != 1 {
		t.Fatalf("timerGen = %d, want 1", a.timerGen)
	}
}

func TestTimerTickAdvancesLiveChain(t *testing.T) {
	a := newTestApp(t)
	a.c.Timer.ToggleRunning()
	a, _ = update(t, a, timerChangedMsg{})

	a, cmd := update(t, a, timerTickMsg{gen: a.timerGen})
	if got := a.c.Timer.State().TimeRemaining; got != 1499 {
		t.Fatalf("TimeRemaining = %d, want 1499", got)
	}
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
}

func TestTimerTickFromStaleChainDropped(t *testing.T) {
	a := newTestApp(t)
	a.c.Timer.ToggleRunning()
	a, _ = update(t, a, timerChangedMsg{})
	a, _ = update(t, a, timerChangedMsg{}) // pause+resume bumps again

	a, cmd := update(t, a, timerTickMsg{gen: 1})
	if got := a.c.Timer.State().TimeRemaining; got != 1500 {
		t.Fatalf("stale tick changed TimeRemaining to %d", got)
	}
	if cmd != nil {
		t.Fatal("stale tick should not reschedule")
	}
}

func TestTimerTickWhenPausedDropped(t *testing.T) {
	a := newTestApp(t)

	a, cmd := update(t, a, timerTickMsg{gen: a.timerGen})
	if cmd != nil {
		t.Fatal("tick while paused should not reschedule")
	}
	if got := a.c.Timer.State().TimeRemaining; got != 1500 {
		t.Fatalf("TimeRemaining = %d, want 1500", got)
	}
}

func TestFocusKeysControlTimer(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keyPress("4"))
	if a.activeView != viewFocus {
		t.Fatalf("activeView = %d, want focus", a.activeView)
	}

	a, cmd := update(t, a, keyPress(" "))
	if !a.c.Timer.Running() {
		t.Fatal("space should start the timer")
	}
	if cmd == nil {
		t.Fatal("expected timerChangedMsg command")
	}

	a, _ = update(t, a, keyPress("b"))
	st := a.c.Timer.State()
	if st.Mode != timer.ModeBreak || st.IsRunning || st.TimeRemaining != 300 {
		t.Fatalf("after b: %+v", st)
	}

	a, _ = update(t, a, keyPress("w"))
	if a.c.Timer.State().Mode != timer.ModeWork {
		t.Fatal("w should switch to work")
	}

	a.c.Timer.ToggleRunning()
	a.c.Timer.Tick()
	a, _ = update(t, a, keyPress("r"))
	st = a.c.Timer.State()
	if st.IsRunning || st.TimeRemaining != 1500 {
		t.Fatalf("after r: %+v", st)
	}
}

// ============================================================
// Activity refresh
// ============================================================

func TestRefreshTickUpdatesReport(t *testing.T) {
	a := newTestApp(t)
	task, _ := a.c.Tasks.Add("write tests")
	a.c.Tasks.Toggle(task.ID)

	a, cmd := update(t, a, refreshTickMsg(testNow))
	if cmd == nil {
		t.Fatal("refresh tick should reschedule")
	}

	report, err := a.c.Activity.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	a, _ = update(t, a, activityMsg{report: report})
	if a.dashboard.report.Totals.TasksCompleted != 1 {
		t.Fatalf("dashboard totals = %+v", a.dashboard.report.Totals)
	}
	if a.analytics.report.Today != "2025-01-08" {
		t.Fatalf("analytics today = %q", a.analytics.report.Today)
	}
}

func TestActivityErrorShownAsStatus(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, activityMsg{err: errTest})
	if !a.isError || !strings.Contains(a.status, "storage full") {
		t.Fatalf("status = %q, isError = %v", a.status, a.isError)
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("storage full")

// ============================================================
// Tasks view
// ============================================================

func TestTasksToggleAndDelete(t *testing.T) {
	a := newTestApp(t)
	a.c.Tasks.Add("A")
	a.c.Tasks.Add("B") // B is newest, listed first
	a, _ = update(t, a, keyPress("2"))

	a, _ = update(t, a, keyPress(" "))
	sum := a.c.Tasks.List()
	if sum.CompletedCount != 1 || sum.Completed[0].Text != "B" {
		t.Fatalf("after toggle: %+v", sum)
	}

	a, _ = update(t, a, keyPress("d"))
	if got := a.c.Tasks.List().Total; got != 1 {
		t.Fatalf("total = %d, want 1", got)
	}
	if a.tasks.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", a.tasks.cursor)
	}
}

func TestTasksFormActivates(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keyPress("2"))
	a, _ = update(t, a, keyPress("n"))
	if !a.isFormActive() {
		t.Fatal("n should open the new task form")
	}

	// q goes to the form, not quit.
	a, _ = update(t, a, keyPress("q"))
	if !a.isFormActive() {
		t.Fatal("form should still be active")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.isFormActive() {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Calendar view
// ============================================================

func TestCalendarSelectedKey(t *testing.T) {
	m := newCalendarModel(newTestContainer(t))
	if got := m.selectedKey(); got != "2025-01-08" {
		t.Fatalf("selectedKey = %q", got)
	}
	m.moveDays(-3)
	if got := m.selectedKey(); got != "2025-01-05" {
		t.Fatalf("after -3 days = %q", got)
	}
}

func TestCalendarMoveMonthsClampsDay(t *testing.T) {
	m := newCalendarModel(newTestContainer(t))
	m.selected = time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)

	m.moveMonths(1)
	if got := m.selectedKey(); got != "2025-02-28" {
		t.Fatalf("Jan 31 + 1 month = %q, want 2025-02-28", got)
	}
	m.moveMonths(-2)
	if got := m.selectedKey(); got != "2024-12-28" {
		t.Fatalf("back 2 months = %q", got)
	}
}

func TestCalendarEventCursor(t *testing.T) {
	a := newTestApp(t)
	a.c.Events.Add("2025-01-08", "standup")
	a.c.Events.Add("2025-01-08", "retro")
	a, _ = update(t, a, keyPress("3"))

	a, _ = update(t, a, keyPress("]"))
	a, _ = update(t, a, keyPress(" "))
	evs := a.c.Events.EventsOn("2025-01-08")
	if evs[0].Completed || !evs[1].Completed {
		t.Fatalf("toggle hit wrong event: %+v", evs)
	}

	a, _ = update(t, a, keyPress("d"))
	if len(a.c.Events.EventsOn("2025-01-08")) != 1 {
		t.Fatal("delete should remove the selected event")
	}
	if a.calendar.cursor != 0 {
		t.Fatalf("cursor = %d after delete", a.calendar.cursor)
	}
}

func TestCalendarGridMarksEvents(t *testing.T) {
	c := newTestContainer(t)
	c.Events.Add("2025-01-20", "dentist")
	m := newCalendarModel(c)

	grid := m.renderGrid()
	if !strings.Contains(grid, "January 2025") {
		t.Fatal("grid missing month title")
	}
	if !strings.Contains(grid, "•") {
		t.Fatal("grid should mark days with events")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSaveTimerSettingsCustom(t *testing.T) {
	c := newTestContainer(t)
	s := newSettingsModel(c)
	*s.preset = customPreset
	*s.workMinutes = "500"
	*s.breakMinutes = "abc"

	if cmd := s.saveTimerSettings(); cmd == nil {
		t.Fatal("expected command")
	}
	want := timer.Settings{WorkDuration: 120, BreakDuration: 1}
	if got := c.Timer.Settings(); got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestSaveTimerSettingsPreset(t *testing.T) {
	c := newTestContainer(t)
	c.Timer.ToggleRunning()
	s := newSettingsModel(c)
	*s.preset = timer.Presets[2].Label
	*s.workMinutes = "7"
	*s.breakMinutes = "7"

	s.saveTimerSettings()
	if got := c.Timer.Settings(); got != timer.Presets[2].Settings {
		t.Fatalf("settings = %+v, want preset %+v", got, timer.Presets[2].Settings)
	}
	if c.Timer.Running() {
		t.Fatal("applying settings should stop the timer")
	}
}

func TestDataClearedResetsApp(t *testing.T) {
	a := newTestApp(t)
	a.c.Tasks.Add("A")
	a.c.Tasks.Add("B")
	a.tasks.cursor = 1
	a.c.ClearAllData()

	a, _ = update(t, a, dataClearedMsg{})
	if a.tasks.cursor != 0 {
		t.Fatalf("cursor = %d after clear", a.tasks.cursor)
	}
	if a.status != "All data cleared" {
		t.Fatalf("status = %q", a.status)
	}
	if a.timerGen != 1 {
		t.Fatal("clear should invalidate any running tick chain")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello w…"},
		{"日本語のタスク", 7, "日本語…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.w); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.w, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Mon", 5); got != "Mon  " {
		t.Fatalf("padRight = %q", got)
	}
}

func TestCompactChart(t *testing.T) {
	m := activity.WeeklyMap{
		"2025-01-06": {TasksCompleted: 2},
		"2025-01-08": {TasksCompleted: 9},
	}
	r := activity.Week(m, testNow)

	lines := strings.Split(renderCompactChart(r.Days), "\n")
	if len(lines) != compactRows+1 {
		t.Fatalf("chart has %d lines, want %d", len(lines), compactRows+1)
	}
	if !strings.Contains(lines[len(lines)-1], "Mon") || !strings.Contains(lines[len(lines)-1], "Sun") {
		t.Fatal("last line should hold day labels")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 6 {
		t.Fatalf("expected 6 view names, got %d", len(viewNames))
	}
	if viewNames[viewSettings] != "Settings" {
		t.Fatalf("viewSettings name = %q", viewNames[viewSettings])
	}
}

func TestTabCyclesViews(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < len(viewNames); i++ {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	}
	if a.activeView != viewDashboard {
		t.Fatalf("after full cycle activeView = %d", a.activeView)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	a := NewApp(newTestContainer(t), 0)

	if a.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if a.refresh != activity.DefaultInterval {
		t.Fatalf("refresh = %v, want default", a.refresh)
	}
	if a.showHelp || a.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if a.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	a := newTestApp(t)
	a.c.Tasks.Add("a task with a rather long description that needs truncating")
	a.c.Events.Add("2025-01-08", "standup")
	report, _ := a.c.Activity.Refresh()
	a, _ = update(t, a, activityMsg{report: report})

	for v := range viewNames {
		a.activeView = viewState(v)
		if out := a.View(); out == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a := newTestApp(t)
	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppFooterShowsRunningTimer(t *testing.T) {
	a := newTestApp(t)
	a.c.Timer.ToggleRunning()
	if !strings.Contains(a.renderFooter(), "25:00") {
		t.Fatal("footer should show the running countdown")
	}
}

func TestAppLoadingState(t *testing.T) {
	a := NewApp(newTestContainer(t), 0)
	if out := a.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, statusMsg{text: "test status"})
	if !strings.Contains(a.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestExportPickerBounds(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keyPress("e"))
	if !a.exportPicking {
		t.Fatal("e should open the export picker")
	}
	for i := 0; i < 5; i++ {
		a, _ = update(t, a, keyPress("j"))
	}
	if a.exportCursor != len(export.Formats)-1 {
		t.Fatalf("cursor = %d, want %d", a.exportCursor, len(export.Formats)-1)
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test: just verify they render)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerWork", func() string { return timerWorkStyle.Render("test") }},
		{"timerBreak", func() string { return timerBreakStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"doneItem", func() string { return doneItemStyle.Render("test") }},
		{"calSelected", func() string { return calSelectedStyle.Render("test") }},
		{"calToday", func() string { return calTodayStyle.Render("test") }},
		{"calEvent", func() string { return calEventStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}

func TestSettingsViewListsStoredData(t *testing.T) {
	c := newTestContainer(t)
	s := newSettingsModel(c)
	s.setSize(120, 40)

	if !strings.Contains(s.view(), "nothing saved yet") {
		t.Fatal("empty store should say nothing is saved")
	}

	c.Tasks.Add("A")
	if !strings.Contains(s.view(), "zenflow-todos") {
		t.Fatal("settings should list the saved task record")
	}
}
