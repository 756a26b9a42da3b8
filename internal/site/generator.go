package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/classview/internal/classify"
	"github.com/ziadkadry99/classview/internal/systems"
)

// IndexFile is the only file a generation writes.
const IndexFile = "index.html"

const defaultAccent = "#228be6"

var accentPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Generator renders a transformed export into a self-contained browser
// document.
type Generator struct {
	OutputDir string
	Preset    systems.Preset

	// BuildID tags the document; a random UUID is used when empty.
	BuildID string
	// Now stamps the document; time.Now when nil.
	Now func() time.Time
	// SearchDelay is the in-page search debounce.
	SearchDelay time.Duration
}

// DefaultSearchDelay is the search debounce used by New.
const DefaultSearchDelay = 200 * time.Millisecond

// New creates a Generator writing into outputDir with the given preset.
func New(outputDir string, preset systems.Preset) *Generator {
	return &Generator{OutputDir: outputDir, Preset: preset, SearchDelay: DefaultSearchDelay}
}

// Result describes a written document.
type Result struct {
	Path  string
	Bytes int64
	Stats classify.Stats
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title       string
	Description string
	Keywords    string
	Version     string
	Edition     string
	SystemKey   string
	BuildID     string
	Generated   string
	Icon        string
	Favicon     template.URL
	Accent      template.CSS
	CSS         template.CSS
	Stats       classify.Stats
	About       template.HTML
	Payload     template.JS
	Script      template.JS
}

// payload is the data literal the in-browser viewer consumes at load time.
type payload struct {
	System        classify.SystemInfo `json:"system"`
	Stats         classify.Stats      `json:"stats"`
	SearchDelayMS int64               `json:"searchDelayMs"`
	Forest        []*classify.Node    `json:"forest"`
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Render builds the complete document in memory.
func (g *Generator) Render(export *classify.Export) ([]byte, error) {
	if export == nil {
		return nil, fmt.Errorf("rendering page: no export")
	}

	forest := export.Forest
	if forest == nil {
		forest = []*classify.Node{}
	}
	stats := export.Stats()

	data, err := json.Marshal(payload{
		System:        export.System,
		Stats:         stats,
		SearchDelayMS: g.SearchDelay.Milliseconds(),
		Forest:        forest,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding forest payload: %w", err)
	}

	about, err := renderAbout(g.Preset, export.System)
	if err != nil {
		return nil, err
	}

	buildID := g.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	accent := g.Preset.AccentColor
	if !accentPattern.MatchString(accent) {
		accent = defaultAccent
	}

	pd := pageData{
		Title:       g.Preset.Title,
		Description: g.Preset.Description,
		Keywords:    strings.Join(g.Preset.Keywords, ", "),
		Version:     g.Preset.Version,
		Edition:     edition(export.System),
		SystemKey:   g.Preset.Key,
		BuildID:     buildID,
		Generated:   now().UTC().Format(time.RFC3339),
		Icon:        g.Preset.Icon,
		Favicon:     favicon(g.Preset.Icon),
		Accent:      template.CSS(accent),
		CSS:         template.CSS(cssContent),
		Stats:       stats,
		About:       about,
		Payload:     template.JS(data),
		Script:      template.JS(jsContent),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pd); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate renders the document and writes it as OutputDir/index.html. The
// document is fully rendered before anything touches the filesystem, and the
// file is replaced atomically.
func (g *Generator) Generate(export *classify.Export) (*Result, error) {
	page, err := g.Render(export)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outPath := filepath.Join(g.OutputDir, IndexFile)
	if err := writeAtomic(outPath, page); err != nil {
		return nil, err
	}

	return &Result{Path: outPath, Bytes: int64(len(page)), Stats: export.Stats()}, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".index-*.html")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

var (
	md          = goldmark.New(goldmark.WithExtensions(extension.GFM))
	aboutPolicy = bluemonday.UGCPolicy()
)

// renderAbout converts the preset and export descriptions to sanitised HTML.
func renderAbout(preset systems.Preset, info classify.SystemInfo) (template.HTML, error) {
	var src strings.Builder
	fmt.Fprintf(&src, "### About %s\n\n", preset.Title)
	if preset.Description != "" {
		src.WriteString(preset.Description)
		src.WriteString("\n\n")
	}
	if info.Description != "" {
		src.WriteString(info.Description)
		src.WriteString("\n\n")
	}
	if ed := edition(info); ed != "" {
		fmt.Fprintf(&src, "*Source edition: %s*\n", ed)
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src.String()), &buf); err != nil {
		return "", fmt.Errorf("converting about text: %w", err)
	}
	return template.HTML(aboutPolicy.SanitizeBytes(buf.Bytes())), nil
}

// edition joins the export's name, version and date.
func edition(info classify.SystemInfo) string {
	var parts []string
	for _, s := range []string{info.Name, info.Version, info.Date} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func favicon(icon string) template.URL {
	if icon == "" {
		icon = "📚"
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		template.HTMLEscapeString(icon) + `</text></svg>`
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

// InjectLiveReload inserts the live-reload client before </body>.
func InjectLiveReload(page []byte) []byte {
	idx := bytes.LastIndex(page, []byte("</body>"))
	if idx < 0 {
		return append(append([]byte{}, page...), liveReloadScript...)
	}
	out := make([]byte, 0, len(page)+len(liveReloadScript))
	out = append(out, page[:idx]...)
	out = append(out, liveReloadScript...)
	return append(out, page[idx:]...)
}
