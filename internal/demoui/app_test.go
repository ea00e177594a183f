package demoui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caseycrogers/implicit-navigator/navigator"
	"github.com/caseycrogers/implicit-navigator/persist"
)

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg   { return tea.KeyMsg{Type: tea.KeyEsc} }

func press(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := a.Update(msg)
	return cmd
}

func TestApp_StartsAtHome(t *testing.T) {
	a := NewApp(nil)
	// Lists are built at zero size; the program always delivers the terminal
	// size before the first render.
	press(t, a, tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := a.sectionSrc.Value(); got != homeSection {
		t.Fatalf("expected %q section, got %q", homeSection, got)
	}
	if a.items != nil {
		t.Error("item scope should not be mounted at home")
	}
	if a.showBack {
		t.Error("back hint should be hidden on a fresh app")
	}
	if view := a.View(); !strings.Contains(view, "Sections") {
		t.Errorf("home view should show the section list, got:\n%s", view)
	}
}

func TestApp_SelectSectionMountsItems(t *testing.T) {
	a := NewApp(nil)
	press(t, a, keyEnter())

	if got := a.sectionSrc.Value(); got != sections[0] {
		t.Fatalf("expected section %q, got %q", sections[0], got)
	}
	if a.items == nil {
		t.Fatal("item scope should be mounted inside a section")
	}
	if a.itemsSection != sections[0] {
		t.Errorf("item scope tracks %q, want %q", a.itemsSection, sections[0])
	}
	if !a.showBack {
		t.Error("back hint should show once history is deeper than one page")
	}
	if got := a.pageTrail(); got != "home > "+sections[0] {
		t.Errorf("page trail = %q", got)
	}
}

func TestApp_SelectItemShowsLeafPage(t *testing.T) {
	a := NewApp(nil)
	press(t, a, keyEnter()) // open first section
	press(t, a, keyEnter()) // open first item

	want := sectionItems[sections[0]][0]
	if got := a.itemSrc.Value(); got != want {
		t.Fatalf("expected item %q, got %q", want, got)
	}
	if view := a.View(); !strings.Contains(view, want) {
		t.Errorf("leaf view should name the open item, got:\n%s", view)
	}
}

func TestApp_EscUnwindsDeepestFirst(t *testing.T) {
	a := NewApp(nil)
	press(t, a, keyEnter())
	press(t, a, keyEnter())

	// First esc pops the item scope, not the section.
	press(t, a, keyEsc())
	if got := a.sectionSrc.Value(); got != sections[0] {
		t.Fatalf("section popped before item, now at %q", got)
	}
	if a.items == nil || a.itemSrc.Value() != "" {
		t.Fatal("expected to be back on the item list")
	}

	// Second esc pops the section and disposes the item scope.
	press(t, a, keyEsc())
	if got := a.sectionSrc.Value(); got != homeSection {
		t.Fatalf("expected %q after second esc, got %q", homeSection, got)
	}
	if a.items != nil {
		t.Error("item scope should be disposed back at home")
	}
	if a.showBack {
		t.Error("back hint should clear once history is exhausted")
	}
}

func TestApp_EscAtHomeQuits(t *testing.T) {
	a := NewApp(nil)
	cmd := press(t, a, keyEsc())
	if cmd == nil {
		t.Fatal("expected a quit command when there is nothing to pop")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestApp_SectionHistoryReachesBridge(t *testing.T) {
	bridge := persist.NewMemoryBridge()
	a := NewApp(bridge)
	press(t, a, keyEnter())

	data, ok := bridge.ReadState("sections")
	if !ok {
		t.Fatal("expected the section stack to be written to the bridge")
	}
	entries, err := navigator.DecodeHistory[string](data)
	if err != nil {
		t.Fatalf("DecodeHistory: %v", err)
	}
	if len(entries) != 2 || entries[0].Value != homeSection || entries[1].Value != sections[0] {
		t.Errorf("persisted stack = %+v", entries)
	}
}

func TestBreadcrumbs_TracksPushesAndPops(t *testing.T) {
	a := NewApp(nil)
	press(t, a, keyEnter())
	press(t, a, keyEsc())

	steps := a.crumbs.Steps()
	if len(steps) != 2 {
		t.Fatalf("expected 2 breadcrumb steps, got %d: %v", len(steps), steps)
	}
	if steps[0] != sections[0] {
		t.Errorf("first step = %q, want %q", steps[0], sections[0])
	}
	if !strings.Contains(steps[1], "back to "+homeSection) {
		t.Errorf("second step = %q", steps[1])
	}
}
