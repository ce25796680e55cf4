package mapgen

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

var svgTemplate = template.Must(template.New("overlay").Funcs(template.FuncMap{
	"xml": xmlEscaper.Replace,
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(`<svg width="{{.Width}}" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <filter id="shadow" x="-50%" y="-50%" width="200%" height="200%">
      <feGaussianBlur in="SourceAlpha" stdDeviation="3"/>
      <feOffset dx="0" dy="2" result="offsetblur"/>
      <feComponentTransfer>
        <feFuncA type="linear" slope="0.3"/>
      </feComponentTransfer>
      <feMerge>
        <feMergeNode/>
        <feMergeNode in="SourceGraphic"/>
      </feMerge>
    </filter>
  </defs>
{{- range .Elements}}
{{- with .Box}}
  <rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" rx="{{.Radius}}" fill="{{xml .Fill}}" fill-opacity="{{num .Opacity}}" stroke="{{xml .Stroke}}" stroke-width="{{.StrokeWidth}}" filter="url(#shadow)"/>
{{- end}}
{{- with .Text}}
  <text x="{{.X}}" y="{{.Y}}" font-size="{{num .Size}}"{{if ne .Weight 400}} font-weight="{{.Weight}}"{{end}} font-family="Go, Arial, sans-serif" fill="{{xml .Fill}}" text-anchor="middle">{{xml .Content}}</text>
{{- end}}
{{- end}}
</svg>
`))

// WriteSVG renders the layout as a standalone SVG overlay.
func WriteSVG(w io.Writer, l Layout) error {
	return svgTemplate.Execute(w, l)
}

// WriteSVGFile writes the overlay to path.
func WriteSVGFile(path string, l Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, l); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
