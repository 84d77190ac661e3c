package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the workspace manifest file name.
const FileName = "Cargo.toml"

// ErrNoWorkspace is returned by FindRoot when no ancestor holds a workspace manifest.
var ErrNoWorkspace = errors.New("no Cargo workspace found")

// Workspace is a decoded workspace manifest. Keys this package does not know
// about are kept and written back on Save.
type Workspace struct {
	Path string
	doc  map[string]any
}

// FindRoot walks up from start to the first directory whose Cargo.toml has
// a [workspace] table.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		path := filepath.Join(dir, FileName)
		if data, err := os.ReadFile(path); err == nil {
			var probe struct {
				Workspace map[string]any `toml:"workspace"`
			}
			if toml.Unmarshal(data, &probe) == nil && probe.Workspace != nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoWorkspace, start)
		}
		dir = parent
	}
}

// Load reads and validates the manifest at path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	doc, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	result, err := ValidateDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid manifest %s: %s", path, result)
	}

	return &Workspace{Path: path, doc: doc}, nil
}

// Members returns the workspace members in manifest order.
func (w *Workspace) Members() []string {
	raw, _ := w.workspace()["members"].([]any)
	members := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			members = append(members, s)
		}
	}
	return members
}

// HasMember reports whether name is listed in workspace.members.
func (w *Workspace) HasMember(name string) bool {
	return slices.Contains(w.Members(), name)
}

// AddMember appends name to workspace.members. It returns false when name
// is already a member.
func (w *Workspace) AddMember(name string) bool {
	if w.HasMember(name) {
		return false
	}
	ws := w.workspace()
	raw, _ := ws["members"].([]any)
	ws["members"] = append(raw, name)
	return true
}

// SetStartTime records when work on the crate began, replacing any previous
// value ([workspace.metadata.<name>] start_time).
func (w *Workspace) SetStartTime(name string, t time.Time) {
	ws := w.workspace()
	metadata, ok := ws["metadata"].(map[string]any)
	if !ok {
		metadata = map[string]any{}
		ws["metadata"] = metadata
	}
	metadata[name] = map[string]any{"start_time": t.Truncate(time.Second)}
}

// StartTime returns the recorded start time for a crate.
func (w *Workspace) StartTime(name string) (time.Time, bool) {
	metadata, _ := w.workspace()["metadata"].(map[string]any)
	entry, _ := metadata[name].(map[string]any)
	switch v := entry["start_time"].(type) {
	case time.Time:
		return v, true
	case toml.LocalDateTime:
		return v.AsTime(time.Local), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		return t, err == nil
	}
	return time.Time{}, false
}

// Save writes the manifest back to Path. Comments and key order are not
// preserved; tables are emitted with sorted keys.
func (w *Workspace) Save() error {
	data, err := toml.Marshal(w.doc)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	tmp := w.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}

func (w *Workspace) workspace() map[string]any {
	ws, ok := w.doc["workspace"].(map[string]any)
	if !ok {
		ws = map[string]any{}
		w.doc["workspace"] = ws
	}
	return ws
}

func parse(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	return doc, nil
}
