package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Data holds the variables available to source templates.
type Data struct {
	Crate  string // e.g., "problem04"
	Number int    // e.g., 4
}

// Render executes every embedded template and returns the output keyed by
// file name (the template name without its .tmpl suffix).
func Render(data Data) (map[string][]byte, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	out := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		src, err := fs.ReadFile(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}

		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".tmpl")] = buf.Bytes()
	}
	return out, nil
}

// WriteSources renders the templates into <crateDir>/src, replacing the
// stubs `cargo new` generated. It returns the written paths relative to
// crateDir, sorted.
func WriteSources(crateDir string, data Data) ([]string, error) {
	files, err := Render(data)
	if err != nil {
		return nil, err
	}

	srcDir := filepath.Join(crateDir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", srcDir, err)
	}

	var written []string
	for _, name := range sortedKeys(files) {
		path := filepath.Join(srcDir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, filepath.Join("src", name))
	}
	return written, nil
}

// AddLine inserts line before the last line of the file at path and makes
// sure the file ends with exactly one newline. The bench harness files end
// with a closing delimiter, so this appends to the list it closes.
func AddLine(path, line string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lines := splitLines(string(data))
	at := len(lines) - 1
	if at < 0 {
		at = 0
	}
	lines = slices.Insert(lines, at, line)

	out := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// splitLines splits on \n or \r\n without producing a trailing empty element.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func sortedKeys(m map[string][]byte) []string {
	return slices.Sorted(maps.Keys(m))
}
