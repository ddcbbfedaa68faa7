package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/output/styles"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Color modes accepted by NewRenderer
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Renderer executes result templates and applies styles
type Renderer struct {
	templates *template.Template
	styles    *styles.Registry
	writer    io.Writer
	noColor   bool
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, colorMode string) (*Renderer, error) {
	log := logging.GetLogger("output.renderer")

	noColor := !useColor(w, colorMode)
	lr := lipgloss.NewRenderer(w)
	switch {
	case noColor:
		lr.SetColorProfile(termenv.Ascii)
	case colorMode == ColorAlways && lr.ColorProfile() == termenv.Ascii:
		lr.SetColorProfile(termenv.ANSI256)
	}
	log.Debug().
		Str("mode", colorMode).
		Bool("noColor", noColor).
		Str("NO_COLOR_env", os.Getenv("NO_COLOR")).
		Msg("Creating renderer")

	r := &Renderer{
		styles:  styles.NewRegistry(styles.Default(), lr),
		writer:  w,
		noColor: noColor,
	}

	tmpl, err := template.New("output").Funcs(r.funcs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

// useColor decides whether styles produce escape sequences
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"style": func(name string, v interface{}) string {
			s := fmt.Sprint(v)
			if r.noColor {
				return s
			}
			return r.styles.Get(name).Render(s)
		},
		"join": strings.Join,
		"plural": func(n int, word string) string {
			if n == 1 {
				return fmt.Sprintf("%d %s", n, word)
			}
			return fmt.Sprintf("%d %ss", n, word)
		},
	}
}

// Render executes the named template (e.g. "init.tmpl") with data
func (r *Renderer) Render(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := io.WriteString(r.writer, strings.TrimRight(buf.String(), "\n")+"\n")
	return err
}

// RenderError renders an error message with appropriate styling
func (r *Renderer) RenderError(err error) error {
	return r.Render("error.tmpl", map[string]string{"Error": err.Error()})
}

// RenderMessage renders a simple message in one style
func (r *Renderer) RenderMessage(style, message string) error {
	return r.Render("message.tmpl", map[string]string{"Style": style, "Message": message})
}

// NoColor reports whether the renderer emits plain text
func (r *Renderer) NoColor() bool {
	return r.noColor
}
