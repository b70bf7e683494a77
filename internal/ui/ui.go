package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cinetrack/internal/catalog"
	"cinetrack/internal/session"
	"cinetrack/internal/tasks"
	"cinetrack/internal/wishlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	WishlistView
	DetailView
)

// Source selects which catalog listing the browse view shows.
type Source int

const (
	SourceNowPlaying Source = iota
	SourcePopular
)

func (s Source) String() string {
	if s == SourcePopular {
		return "Popular"
	}
	return "Now Playing"
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	source       Source
	catalog      tasks.Catalog
	wishlist     *wishlist.Manager
	session      *session.Store
	engine       *tasks.Engine
	width        int
	height       int
	movieList    list.Model
	page         catalog.Page
	selected     *catalog.Movie
	export       *tasks.ExportResult
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	err          error
	status       string
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	toggle key.Binding
	source key.Binding
	saved  key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wishlist toggle")),
		source: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "now playing/popular")),
		saved:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "saved movies")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.source, k.saved, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.toggle, k.source, k.saved},
		{k.back, k.quit},
	}
}

// movieItem wraps [catalog.Movie] to implement list.Item.
type movieItem struct {
	movie catalog.Movie
	saved bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.saved {
		return "★ " + i.movie.Title
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("%.1f ☆ (%d votes)", i.movie.VoteAverage, i.movie.VoteCount)
	if i.movie.ReleaseDate != "" {
		desc = fmt.Sprintf("%s • %s", i.movie.ReleaseDate, desc)
	}
	return desc
}

type moviesFetchedMsg struct {
	page catalog.Page
	err  error
}

type wishlistResolvedMsg struct {
	export *tasks.ExportResult
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type toggledMsg struct {
	movie catalog.Movie
	saved bool
	err   error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, cat tasks.Catalog, wl *wishlist.Manager, sess *session.Store, engine *tasks.Engine) *Model {
	return &Model{
		ctx:      ctx,
		view:     BrowseView,
		source:   SourceNowPlaying,
		catalog:  cat,
		wishlist: wl,
		session:  sess,
		engine:   engine,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the TUI by fetching the first catalog page.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case WishlistView:
			return m.handleWishlistKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.page = msg.page
		m.installMovieList()
		return m, nil

	case wishlistResolvedMsg:
		m.export = msg.export
		m.err = msg.err
		m.progressChan = nil
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case toggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("wishlist update failed: %v", msg.err))
			return m, nil
		}
		if msg.saved {
			m.status = styles.ok.Render(fmt.Sprintf("Added '%s' to wishlist", msg.movie.Title))
		} else {
			m.status = styles.warn.Render(fmt.Sprintf("Removed '%s' from wishlist", msg.movie.Title))
		}
		m.installMovieList()
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case WishlistView:
		return m.renderWishlist()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.source == SourceNowPlaying {
			m.source = SourcePopular
		} else {
			m.source = SourceNowPlaying
		}
		return m, m.fetchMovies()
	case "s":
		m.view = WishlistView
		return m, m.resolveWishlist()
	case "w":
		if movie, ok := m.selectedMovie(); ok {
			return m, m.toggleWishlist(movie)
		}
	case "enter":
		if movie, ok := m.selectedMovie(); ok {
			m.selected = &movie
			m.view = DetailView
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handleWishlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		m.export = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		m.selected = nil
		return m, nil
	case "w":
		if m.selected != nil {
			return m, m.toggleWishlist(*m.selected)
		}
	}
	return m, nil
}

func (m *Model) selectedMovie() (catalog.Movie, bool) {
	selected := m.movieList.SelectedItem()
	if selected == nil {
		return catalog.Movie{}, false
	}
	item, ok := selected.(movieItem)
	if !ok {
		return catalog.Movie{}, false
	}
	return item.movie, true
}

func (m *Model) installMovieList() {
	email := m.session.UserEmail()
	items := make([]list.Item, len(m.page.Movies))
	for i, movie := range m.page.Movies {
		items[i] = movieItem{movie: movie, saved: m.wishlist.Contains(email, movie.ID)}
	}

	index := m.movieList.Index()
	m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.movieList.Title = m.source.String()
	m.movieList.SetSize(m.width-4, m.height-8)
	if index < len(items) {
		m.movieList.Select(index)
	}
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == BrowseView {
		m.movieList, cmd = m.movieList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		var page catalog.Page
		if m.source == SourcePopular {
			page = m.catalog.Popular(m.ctx, 1)
		} else {
			page = m.catalog.NowPlaying(m.ctx, 1)
		}
		return moviesFetchedMsg{page: page}
	}
}

func (m *Model) toggleWishlist(movie catalog.Movie) tea.Cmd {
	return func() tea.Msg {
		email := m.session.UserEmail()
		if m.wishlist.Contains(email, movie.ID) {
			err := m.wishlist.Remove(email, movie.ID)
			return toggledMsg{movie: movie, saved: false, err: err}
		}
		err := m.wishlist.Add(email, movie.ID, movie.GenreIDs)
		return toggledMsg{movie: movie, saved: true, err: err}
	}
}

func (m *Model) resolveWishlist() tea.Cmd {
	m.export = nil
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	email := m.session.UserEmail()
	progress := m.progressChan

	go func() {
		export, err := m.engine.Export(m.ctx, progress, email)
		m.export = export
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return wishlistResolvedMsg{export: m.export, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return wishlistResolvedMsg{export: m.export, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderBrowse() string {
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	body := fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, m.status)
	}
	return body
}

func (m *Model) renderWishlist() string {
	title := styles.title.Render(fmt.Sprintf("Wishlist - %s", m.session.UserEmail()))

	if m.export == nil {
		phase := "Loading wishlist..."
		if m.progress.Message != "" {
			phase = m.progress.Message
		}
		return fmt.Sprintf("%s\n\n%s", title, phase)
	}

	var body string
	if len(m.export.Movies) == 0 {
		body = styles.warn.Render("No saved movies yet. Press esc to browse.")
	} else {
		for i, movie := range m.export.Movies {
			body += fmt.Sprintf("%d. %s (%s) - ★ %.1f\n", i+1, movie.Title, movie.ReleaseDate, movie.VoteAverage)
		}
		if m.export.FailedCount > 0 {
			body += styles.warn.Render(fmt.Sprintf("\n%d entries could not be resolved", m.export.FailedCount))
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No movie selected\n\nPress esc to go back")
	}

	movie := m.selected
	title := styles.title.Render(movie.Title)
	sub := ""
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		sub = styles.help.Render(movie.OriginalTitle) + "\n"
	}

	saved := ""
	if m.wishlist.Contains(m.session.UserEmail(), movie.ID) {
		saved = styles.ok.Render("★ On your wishlist") + "\n"
	}

	info := fmt.Sprintf(
		"Released: %s\nRating: %.1f (%d votes)\nPopularity: %.1f\n\n%s\n",
		movie.ReleaseDate, movie.VoteAverage, movie.VoteCount, movie.Popularity, movie.Overview,
	)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s%s\n%s\n%s", title, sub, saved, info, m.status, helpView)
}
