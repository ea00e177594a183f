package demoui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caseycrogers/implicit-navigator/navigator"
)

// The demo models a tiny two-level browser: a section scope at the root and
// a nested item scope that mounts while a section is open. Both scopes are
// bound to ValueNotifiers, so pops roll the application state back and the
// views simply re-render from that state.

const homeSection = "home"

var sections = []string{"library", "settings"}

var sectionItems = map[string][]string{
	"library":  {"intro", "guides", "reference"},
	"settings": {"profile", "appearance", "advanced"},
}

// sectionDepth places home at rung 0 and every section at rung 1, so moving
// between sections replaces the open one instead of piling history.
func sectionDepth(section string) *int {
	if section == homeSection {
		return navigator.Depth(0)
	}
	return navigator.Depth(1)
}

// navItem implements list.Item for a plain name.
type navItem string

func (n navItem) FilterValue() string { return string(n) }
func (n navItem) Title() string       { return string(n) }
func (n navItem) Description() string { return "" }

// App is the root Bubble Tea model hosting the navigation scopes.
type App struct {
	bridge navigator.Bridge

	sectionSrc *navigator.ValueNotifier[string]
	root       *navigator.Scope[string]

	itemSrc      *navigator.ValueNotifier[string]
	items        *navigator.Scope[string]
	itemsSection string

	crumbs   *Breadcrumbs
	showBack bool

	sectionList list.Model
	itemList    list.Model
	width       int
	height      int
}

// NewApp creates the demo model. bridge may be nil to disable history
// preservation for the root scope.
func NewApp(bridge navigator.Bridge) *App {
	a := &App{
		bridge:     bridge,
		sectionSrc: navigator.NewValueNotifier(homeSection),
		crumbs:     NewBreadcrumbs(6),
	}

	opts := []navigator.Option[string]{
		navigator.WithGetDepth(sectionDepth),
		navigator.WithSourceRollback[string](),
	}
	if bridge != nil {
		opts = append(opts,
			navigator.WithIdentity[string]("sections"),
			navigator.WithPreserveHistory[string](bridge),
		)
	}
	a.root = navigator.NewScope[string](a.sectionSrc, opts...)
	a.root.Mount(nil)
	a.root.OnEvent(a.crumbs.Listener())
	a.root.CanPopFlag().Subscribe(func(v bool) { a.showBack = v })

	delegate := newListDelegate()
	secItems := make([]list.Item, len(sections))
	for i, s := range sections {
		secItems[i] = navItem(s)
	}
	a.sectionList = list.New(secItems, delegate, 0, 0)
	a.sectionList.Title = "Sections"
	a.sectionList.SetShowStatusBar(false)
	a.sectionList.SetFilteringEnabled(false)
	a.sectionList.SetShowHelp(false)
	a.sectionList.DisableQuitKeybindings()
	a.sectionList.Styles.Title = Styles.Title

	a.syncScopes()
	a.root.Scheduler().Flush()
	return a
}

// OnEvent registers a listener on the root scope. Events from nested scopes
// dispatch upward, so a root listener observes the whole tree.
func (a *App) OnEvent(fn navigator.EventListener) (cancel func()) {
	return a.root.OnEvent(fn)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.sectionList.SetSize(msg.Width-4, msg.Height-8)
		a.itemList.SetSize(msg.Width-4, msg.Height-8)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "esc", "backspace":
			// A failed tree-pop means nothing anywhere can unwind:
			// fall through to the host's default back behavior.
			if !a.root.Pop() {
				return a, tea.Quit
			}
		case "enter":
			a.handleSelect()
		default:
			cmd = a.updateActiveList(msg)
		}
	default:
		cmd = a.updateActiveList(msg)
	}

	// End of the frame: apply deferred events and flag recomputation,
	// then reconcile which scopes should be mounted.
	a.root.Scheduler().Flush()
	a.syncScopes()
	a.root.Scheduler().Flush()
	return a, cmd
}

func (a *App) handleSelect() {
	switch {
	case a.sectionSrc.Value() == homeSection:
		if it, ok := a.sectionList.SelectedItem().(navItem); ok {
			a.sectionSrc.Set(string(it))
		}
	case a.items != nil && a.itemSrc.Value() == "":
		if it, ok := a.itemList.SelectedItem().(navItem); ok {
			a.itemSrc.Set(string(it))
		}
	}
}

func (a *App) updateActiveList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if a.sectionSrc.Value() == homeSection {
		a.sectionList, cmd = a.sectionList.Update(msg)
	} else if a.items != nil && a.itemSrc.Value() == "" {
		a.itemList, cmd = a.itemList.Update(msg)
	}
	return cmd
}

// syncScopes mounts the item scope while a section is open and disposes it
// when the section closes or changes. The scope registers under the root,
// so tree-pops unwind item history before section history.
func (a *App) syncScopes() {
	section := a.sectionSrc.Value()

	if a.items != nil && (section == homeSection || section != a.itemsSection) {
		a.items.Dispose()
		a.items = nil
		a.itemSrc = nil
		a.itemsSection = ""
	}
	if section == homeSection || a.items != nil {
		return
	}

	a.itemSrc = navigator.NewValueNotifier("")
	a.items = navigator.NewScope[string](a.itemSrc,
		navigator.WithSourceRollback[string](),
	)
	a.items.Mount(a.root)
	a.itemsSection = section

	names := sectionItems[section]
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = navItem(n)
	}
	a.itemList = list.New(items, newListDelegate(), a.width-4, a.height-8)
	a.itemList.Title = section
	a.itemList.SetShowStatusBar(false)
	a.itemList.SetFilteringEnabled(false)
	a.itemList.SetShowHelp(false)
	a.itemList.DisableQuitKeybindings()
	a.itemList.Styles.Title = Styles.Title
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch {
	case a.sectionSrc.Value() == homeSection:
		body = a.sectionList.View()
	case a.items != nil && a.itemSrc.Value() == "":
		body = a.itemList.View()
	default:
		item := ""
		if a.itemSrc != nil {
			item = a.itemSrc.Value()
		}
		body = Styles.Title.Render(item) + "\n\n" +
			Styles.Normal.Render(fmt.Sprintf("You are reading %q in %q.", item, a.sectionSrc.Value()))
	}

	var b strings.Builder
	b.WriteString(a.crumbs.View())
	b.WriteString("\n")
	b.WriteString(Styles.Muted.Render("pages: " + a.pageTrail()))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(Styles.Hint.Render(a.hint()))
	return b.String()
}

// pageTrail flattens the mounted stacks into a display path, root pages
// first, then the nested item pages.
func (a *App) pageTrail() string {
	var parts []string
	for _, p := range a.root.Pages() {
		parts = append(parts, p.Value)
	}
	if a.items != nil {
		for _, p := range a.items.Pages() {
			if p.Value != "" {
				parts = append(parts, p.Value)
			}
		}
	}
	return strings.Join(parts, " > ")
}

func (a *App) hint() string {
	if a.showBack {
		return "esc back · q quit"
	}
	return "q quit"
}
