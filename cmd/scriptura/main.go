// Command scriptura is the CLI tool for the Scriptura engine.
// It provides commands for installing translations, looking up verses,
// resolving and formatting references, searching, and tracking reading
// state.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/library"
	"github.com/FocuswithJustin/Scriptura/core/normalize"
	"github.com/FocuswithJustin/Scriptura/core/refs"
	"github.com/FocuswithJustin/Scriptura/core/sqlite"
	"github.com/FocuswithJustin/Scriptura/internal/config"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
	"github.com/FocuswithJustin/Scriptura/internal/payload"
	"github.com/FocuswithJustin/Scriptura/internal/readingstate"
	"github.com/FocuswithJustin/Scriptura/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for scriptura.
var CLI struct {
	// Global flags
	Config   string `name:"config" short:"c" help:"Config file path" type:"path"`
	Owner    string `name:"owner" help:"Reading-state owner (defaults to config)"`
	LogLevel string `name:"log-level" help:"Override log level (debug|info|warn|error)"`

	// Command groups (noun-first organization)
	Translation TranslationGroup `cmd:"" help:"Translation management (install, list, remove)"`
	Verse       VerseGroup       `cmd:"" help:"Verse lookup"`
	Search      SearchCmd        `cmd:"" help:"Fuzzy text search within a translation"`
	Ref         RefGroup         `cmd:"" help:"Reference formatting and resolution"`
	Reading     ReadingGroup     `cmd:"" help:"Reading state (bookmarks, highlights, history)"`
	Version     VersionCmd       `cmd:"" help:"Print version information"`
}

// App carries shared state into command Run methods.
type App struct {
	cfg     *config.Config
	reg     *canon.Registry
	lib     *library.Library
	ctx     context.Context
	db      *store.SQLiteStore
	tracker *readingstate.Tracker
}

func newApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
		reg: canon.Default(),
		ctx: context.Background(),
	}
	app.lib = library.New(app.reg, cfg.CacheSize, logging.GetLogger())
	if err := app.loadTranslations(); err != nil {
		return nil, err
	}
	return app, nil
}

// translationsDir is where installed payloads are kept between runs.
func (a *App) translationsDir() string {
	return filepath.Join(a.cfg.DataDir, "translations")
}

// loadTranslations republishes every payload found in the data
// directory. A payload that no longer normalizes is skipped with a
// warning rather than failing the whole CLI.
func (a *App) loadTranslations() error {
	dir := a.translationsDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read translations dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, format, err := payload.Load(path)
		if err != nil {
			logging.Warn("skipping payload", "path", path, "error", err)
			continue
		}
		if _, err := a.installPayload(data, format, ""); err != nil {
			logging.Warn("skipping payload", "path", path, "error", err)
		}
	}
	return nil
}

// installPayload normalizes and publishes a payload. The adapter
// language comes from the flag, the payload metadata, or the config
// default, in that order.
func (a *App) installPayload(data []byte, format library.Format, language string) (bible.Metadata, error) {
	if language == "" {
		raw, err := parseRaw(data, format)
		if err != nil {
			return bible.Metadata{}, err
		}
		language = raw.Meta.Language
	}
	if language == "" {
		language = a.cfg.DefaultLanguage
	}
	ad := normalize.NewAdapter(language, nil)
	return a.lib.Install(data, format, ad)
}

func parseRaw(data []byte, format library.Format) (*normalize.RawBible, error) {
	if format == library.FormatXML {
		return normalize.ParseXML(data)
	}
	return normalize.ParseJSON(data)
}

func (a *App) owner() string {
	if CLI.Owner != "" {
		return CLI.Owner
	}
	return a.cfg.DefaultOwner
}

// state lazily opens the reading-state database and hydrates the
// current owner.
func (a *App) state() (*readingstate.Tracker, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}
	db, err := store.Open(filepath.Join(a.cfg.DataDir, a.cfg.DatabasePath))
	if err != nil {
		return nil, fmt.Errorf("open reading state: %w", err)
	}
	a.db = db
	a.tracker = readingstate.New(db, logging.GetLogger())
	if err := a.tracker.Hydrate(a.ctx, a.owner()); err != nil {
		return nil, err
	}
	return a.tracker, nil
}

// parseRef parses a free-text reference, fills in the default
// translation when the text carries none, and validates the result
// against the translation's actual extents.
func (a *App) parseRef(text, translation, language string) (refs.Reference, error) {
	if language == "" {
		language = a.cfg.DefaultLanguage
	}
	r, err := refs.ParseFreeText(a.reg, text, language)
	if err != nil {
		return refs.Reference{}, err
	}
	if r.Translation == "" {
		r.Translation = translation
	}
	if r.Translation == "" {
		r.Translation = a.cfg.DefaultTranslation
	}
	return a.lib.Resolve(r.Translation, r.Book, r.Chapter, r.VerseStart, r.VerseEnd)
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// TranslationGroup contains translation lifecycle operations.
type TranslationGroup struct {
	Install TranslationInstallCmd `cmd:"" help:"Install a translation payload (json/xml, optionally xz/gz compressed)"`
	List    TranslationListCmd    `cmd:"" help:"List installed translations"`
	Remove  TranslationRemoveCmd  `cmd:"" help:"Remove an installed translation"`
}

// TranslationInstallCmd installs a payload file.
type TranslationInstallCmd struct {
	Path     string `arg:"" help:"Path to payload file" type:"existingfile"`
	Language string `help:"Override the payload's book-name language"`
}

func (c *TranslationInstallCmd) Run(app *App) error {
	data, format, err := payload.Load(c.Path)
	if err != nil {
		return err
	}
	meta, err := app.installPayload(data, format, c.Language)
	if err != nil {
		return err
	}

	// Keep the decompressed payload so the next invocation finds it.
	dir := app.translationsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create translations dir: %w", err)
	}
	dst := filepath.Join(dir, meta.Code+"."+string(format))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("store payload: %w", err)
	}

	fmt.Printf("Installed: %s\n", meta.Code)
	fmt.Printf("  Name:     %s\n", meta.DisplayName)
	fmt.Printf("  Language: %s\n", meta.Language)
	if meta.Year != 0 {
		fmt.Printf("  Year:     %d\n", meta.Year)
	}
	return nil
}

// TranslationListCmd lists installed translations.
type TranslationListCmd struct{}

func (c *TranslationListCmd) Run(app *App) error {
	metas := app.lib.Translations()
	if len(metas) == 0 {
		fmt.Println("No translations installed.")
		return nil
	}
	for _, m := range metas {
		fmt.Printf("%-8s %-30s %s\n", m.Code, m.DisplayName, m.Language)
	}
	return nil
}

// TranslationRemoveCmd removes an installed translation.
type TranslationRemoveCmd struct {
	Code string `arg:"" help:"Translation code"`
}

func (c *TranslationRemoveCmd) Run(app *App) error {
	if err := app.lib.Remove(c.Code); err != nil {
		return err
	}
	for _, ext := range []string{"json", "xml"} {
		os.Remove(filepath.Join(app.translationsDir(), c.Code+"."+ext))
	}
	fmt.Printf("Removed: %s\n", c.Code)
	return nil
}

// VerseGroup contains verse lookup operations.
type VerseGroup struct {
	Get     VerseGetCmd     `cmd:"" help:"Look up a verse or verse range by reference"`
	Chapter VerseChapterCmd `cmd:"" help:"Print a whole chapter"`
}

// VerseGetCmd looks up a verse or range by free-text reference.
type VerseGetCmd struct {
	Ref         []string `arg:"" help:"Reference, e.g. 'Kejadian 1:1-2' or 'John 3:16 (TB)'"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *VerseGetCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	fmt.Println(refs.Format(app.reg, r, lang, true))

	end := r.VerseEnd
	if end == 0 {
		end = r.VerseStart
	}
	for v := r.VerseStart; v <= end; v++ {
		verse, err := app.lib.Verse(r.Translation, r.Book, r.Chapter, v)
		if err != nil {
			return err
		}
		fmt.Printf("  %d  %s\n", verse.Verse, verse.Text)
	}
	return nil
}

// VerseChapterCmd prints a whole chapter and records the visit.
type VerseChapterCmd struct {
	Book        string `arg:"" help:"Book name, e.g. 'Mazmur' or '1 Raja-raja'"`
	Chapter     int    `arg:"" help:"Chapter number"`
	Translation string `short:"t" help:"Translation code (defaults to config)"`
	Language    string `short:"l" help:"Book-name language (en|id)"`
}

func (c *VerseChapterCmd) Run(app *App) error {
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	translation := c.Translation
	if translation == "" {
		translation = app.cfg.DefaultTranslation
	}

	book, err := app.reg.Resolve(c.Book, lang)
	if err != nil {
		return err
	}
	verses, err := app.lib.Chapter(translation, book, c.Chapter)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d (%s)\n", app.reg.LocalizedName(book, lang), c.Chapter, refs.DisplayCode(translation, lang))
	for _, v := range verses {
		fmt.Printf("  %d  %s\n", v.Verse, v.Text)
	}

	tracker, err := app.state()
	if err != nil {
		return err
	}
	return tracker.RecordVisit(app.ctx, app.owner(), translation, book, c.Chapter)
}

// SearchCmd runs a fuzzy text search within one translation.
type SearchCmd struct {
	Query       []string `arg:"" help:"Search terms"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Limit       int      `short:"n" help:"Maximum results (defaults to config)"`
	Language    string   `short:"l" help:"Display language for references (en|id)"`
}

func (c *SearchCmd) Run(app *App) error {
	translation := c.Translation
	if translation == "" {
		translation = app.cfg.DefaultTranslation
	}
	limit := c.Limit
	if limit == 0 {
		limit = app.cfg.SearchLimit
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}

	hits, err := app.lib.Search(translation, strings.Join(c.Query, " "), limit, lang)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%.2f  %-24s %s\n", h.Score, h.Display, h.MatchedText)
	}
	return nil
}

// RefGroup contains reference formatting and resolution operations.
type RefGroup struct {
	Format  RefFormatCmd  `cmd:"" help:"Format a reference for display"`
	Resolve RefResolveCmd `cmd:"" help:"Parse a free-text reference into canonical form"`
}

// RefFormatCmd formats a validated reference.
type RefFormatCmd struct {
	Book        string `arg:"" help:"Book name"`
	Chapter     int    `arg:"" help:"Chapter number"`
	Verse       int    `arg:"" help:"Verse number"`
	End         int    `help:"End verse for a range"`
	Translation string `short:"t" help:"Translation code (defaults to config)"`
	Language    string `short:"l" help:"Display language (en|id)"`
	Plain       bool   `help:"Omit the translation suffix"`
}

func (c *RefFormatCmd) Run(app *App) error {
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	translation := c.Translation
	if translation == "" {
		translation = app.cfg.DefaultTranslation
	}

	book, err := app.reg.Resolve(c.Book, lang)
	if err != nil {
		return err
	}
	r, err := app.lib.Resolve(translation, book, c.Chapter, c.Verse, c.End)
	if err != nil {
		return err
	}
	fmt.Println(refs.Format(app.reg, r, lang, !c.Plain))
	return nil
}

// RefResolveCmd parses free text into a canonical reference.
type RefResolveCmd struct {
	Text        []string `arg:"" help:"Free-text reference"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *RefResolveCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Text, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	fmt.Printf("Key:     %s\n", r.Key())
	fmt.Printf("Display: %s\n", refs.Format(app.reg, r, lang, true))
	return nil
}

// ReadingGroup contains reading-state operations.
type ReadingGroup struct {
	Bookmark  BookmarkGroup  `cmd:"" help:"Bookmark operations"`
	Highlight HighlightGroup `cmd:"" help:"Highlight operations"`
	History   HistoryGroup   `cmd:"" help:"Visit history operations"`
}

// BookmarkGroup contains bookmark operations.
type BookmarkGroup struct {
	Add    BookmarkAddCmd    `cmd:"" help:"Bookmark a verse"`
	Show   BookmarkShowCmd   `cmd:"" help:"Show the bookmark on a verse"`
	List   BookmarkListCmd   `cmd:"" help:"List bookmarks"`
	Remove BookmarkRemoveCmd `cmd:"" help:"Remove a bookmark"`
}

// BookmarkAddCmd bookmarks a verse position.
type BookmarkAddCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Label       string   `help:"Optional label"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *BookmarkAddCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	pos := positionFromRef(r)
	if _, err := tracker.AddBookmark(app.ctx, app.owner(), pos, c.Label); err != nil {
		return err
	}
	fmt.Printf("Bookmarked: %s\n", pos.String())
	return nil
}

// BookmarkShowCmd shows the bookmark on a verse, if any.
type BookmarkShowCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *BookmarkShowCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	b, ok := tracker.Bookmark(app.owner(), positionFromRef(r))
	if !ok {
		fmt.Println("No bookmark.")
		return nil
	}
	if b.Label != "" {
		fmt.Printf("%s  %s\n", b.Pos.String(), b.Label)
	} else {
		fmt.Println(b.Pos.String())
	}
	return nil
}

// BookmarkListCmd lists the owner's bookmarks.
type BookmarkListCmd struct {
	Language string `short:"l" help:"Display language (en|id)"`
}

func (c *BookmarkListCmd) Run(app *App) error {
	tracker, err := app.state()
	if err != nil {
		return err
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	bookmarks := tracker.Bookmarks(app.owner())
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks.")
		return nil
	}
	for _, b := range bookmarks {
		display := app.displayPosition(b.Pos, lang)
		if b.Label != "" {
			fmt.Printf("%-24s %s\n", display, b.Label)
		} else {
			fmt.Println(display)
		}
	}
	return nil
}

// BookmarkRemoveCmd removes a bookmark by reference.
type BookmarkRemoveCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *BookmarkRemoveCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	return tracker.RemoveBookmark(app.ctx, app.owner(), positionFromRef(r))
}

// HighlightGroup contains highlight operations.
type HighlightGroup struct {
	Set    HighlightSetCmd    `cmd:"" help:"Highlight a verse with a color"`
	Show   HighlightShowCmd   `cmd:"" help:"Show the highlight on a verse"`
	List   HighlightListCmd   `cmd:"" help:"List highlights"`
	Remove HighlightRemoveCmd `cmd:"" help:"Remove a highlight"`
}

// HighlightSetCmd highlights a verse. Highlighting the same verse
// again replaces the color.
type HighlightSetCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Color       string   `required:"" help:"Highlight color"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *HighlightSetCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	pos := positionFromRef(r)
	if _, err := tracker.SetHighlight(app.ctx, app.owner(), pos, c.Color); err != nil {
		return err
	}
	fmt.Printf("Highlighted %s (%s)\n", pos.String(), c.Color)
	return nil
}

// HighlightShowCmd shows the highlight on a verse, if any.
type HighlightShowCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *HighlightShowCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	h, ok := tracker.Highlight(app.owner(), positionFromRef(r))
	if !ok {
		fmt.Println("No highlight.")
		return nil
	}
	fmt.Println(h.Color)
	return nil
}

// HighlightListCmd lists the owner's highlights.
type HighlightListCmd struct {
	Language string `short:"l" help:"Display language (en|id)"`
}

func (c *HighlightListCmd) Run(app *App) error {
	tracker, err := app.state()
	if err != nil {
		return err
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	highlights := tracker.Highlights(app.owner())
	if len(highlights) == 0 {
		fmt.Println("No highlights.")
		return nil
	}
	for _, h := range highlights {
		fmt.Printf("%-24s %s\n", app.displayPosition(h.Pos, lang), h.Color)
	}
	return nil
}

// HighlightRemoveCmd removes a highlight by reference.
type HighlightRemoveCmd struct {
	Ref         []string `arg:"" help:"Verse reference"`
	Translation string   `short:"t" help:"Translation code (defaults to config)"`
	Language    string   `short:"l" help:"Book-name language (en|id)"`
}

func (c *HighlightRemoveCmd) Run(app *App) error {
	r, err := app.parseRef(strings.Join(c.Ref, " "), c.Translation, c.Language)
	if err != nil {
		return err
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	return tracker.RemoveHighlight(app.ctx, app.owner(), positionFromRef(r))
}

// HistoryGroup contains visit-history operations.
type HistoryGroup struct {
	Show  HistoryShowCmd  `cmd:"" help:"Show visit history, most recent first"`
	Visit HistoryVisitCmd `cmd:"" help:"Record a chapter visit"`
}

// HistoryShowCmd prints the owner's visit history.
type HistoryShowCmd struct {
	Language string `short:"l" help:"Display language (en|id)"`
}

func (c *HistoryShowCmd) Run(app *App) error {
	tracker, err := app.state()
	if err != nil {
		return err
	}
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	visits := tracker.History(app.owner())
	if len(visits) == 0 {
		fmt.Println("No history.")
		return nil
	}
	for _, v := range visits {
		name := app.reg.LocalizedName(v.Book, lang)
		fmt.Printf("%s  %s %d (%s)\n",
			v.VisitedAt.Format("2006-01-02 15:04"),
			name, v.Chapter, refs.DisplayCode(v.Translation, lang))
	}
	return nil
}

// HistoryVisitCmd records a chapter visit explicitly.
type HistoryVisitCmd struct {
	Book        string `arg:"" help:"Book name"`
	Chapter     int    `arg:"" help:"Chapter number"`
	Translation string `short:"t" help:"Translation code (defaults to config)"`
	Language    string `short:"l" help:"Book-name language (en|id)"`
}

func (c *HistoryVisitCmd) Run(app *App) error {
	lang := c.Language
	if lang == "" {
		lang = app.cfg.DefaultLanguage
	}
	translation := c.Translation
	if translation == "" {
		translation = app.cfg.DefaultTranslation
	}
	book, err := app.reg.Resolve(c.Book, lang)
	if err != nil {
		return err
	}
	if c.Chapter < 1 || c.Chapter > app.reg.ChapterCount(book) {
		return fmt.Errorf("chapter %d out of range for %s", c.Chapter, app.reg.LocalizedName(book, lang))
	}
	tracker, err := app.state()
	if err != nil {
		return err
	}
	return tracker.RecordVisit(app.ctx, app.owner(), translation, book, c.Chapter)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Printf("scriptura %s\n", version)
	info := sqlite.GetInfo()
	fmt.Printf("  sqlite driver: %s (%s)\n", info.DriverName, info.DriverType)
	stats := app.lib.CacheStats()
	fmt.Printf("  index cache:   %d/%d\n", stats.Size, stats.MaxSize)
	return nil
}

// positionFromRef maps a validated reference to a tracker position.
// Ranges track their starting verse.
func positionFromRef(r refs.Reference) readingstate.Position {
	return readingstate.Position{
		Translation: r.Translation,
		Book:        r.Book,
		Chapter:     r.Chapter,
		Verse:       r.VerseStart,
	}
}

// displayPosition renders a tracker position as a localized reference.
func (a *App) displayPosition(pos readingstate.Position, language string) string {
	r := refs.Reference{
		Book:        pos.Book,
		Chapter:     pos.Chapter,
		VerseStart:  pos.Verse,
		Translation: pos.Translation,
	}
	return refs.Format(a.reg, r, language, true)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scriptura"),
		kong.Description("Scriptura - scripture indexing and reference resolution toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(CLI.Config)
	ctx.FatalIfErrorf(err)
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))

	app, err := newApp(cfg)
	ctx.FatalIfErrorf(err)
	defer app.Close()

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}
