// Package formats provides pluggable level catalog file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"gopkg.in/yaml.v3"
)

// YAMLCatalog represents the YAML structure for a catalog file.
type YAMLCatalog struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents one level in a catalog file.
type YAMLLevel struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Size   YAMLSize    `yaml:"size"`
	Walls  [][]int     `yaml:"walls"` // Each wall is [x, y, w, h]
	Starts []YAMLPoint `yaml:"starts"`
	Goal   YAMLPoint   `yaml:"goal"`
}

// YAMLSize represents arena dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint represents a position in arena units.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Catalog is a parsed, ordered list of levels ready for play.
type Catalog struct {
	ID       string
	Name     string
	Levels   []*maze.Level
	FilePath string // Empty for built-in catalogs
}

// Title returns the display name, falling back to the ID.
func (c *Catalog) Title() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ParseYAML parses a YAML catalog file.
// Structural problems (malformed walls, missing starts) are reported with
// maze.ErrInvalidLevelData; placement checks are left to maze.Validate.
func ParseYAML(data []byte) (*Catalog, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yc.ID == "" {
		return nil, fmt.Errorf("catalog has no id: %w", maze.ErrInvalidLevelData)
	}
	if len(yc.Levels) == 0 {
		return nil, fmt.Errorf("catalog %q has no levels: %w", yc.ID, maze.ErrInvalidLevelData)
	}

	cat := &Catalog{
		ID:     yc.ID,
		Name:   yc.Name,
		Levels: make([]*maze.Level, 0, len(yc.Levels)),
	}
	for i, yl := range yc.Levels {
		level, err := yl.toLevel(i)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", yc.ID, err)
		}
		cat.Levels = append(cat.Levels, level)
	}
	return cat, nil
}

func (yl YAMLLevel) toLevel(index int) (*maze.Level, error) {
	id := yl.ID
	if id == "" {
		id = fmt.Sprintf("level-%d", index+1)
	}

	walls := make([]core.Rect, 0, len(yl.Walls))
	for j, w := range yl.Walls {
		if len(w) != 4 {
			return nil, fmt.Errorf("level %q: wall %d has %d values, expected [x, y, w, h]: %w", id, j+1, len(w), maze.ErrInvalidLevelData)
		}
		if w[2] <= 0 || w[3] <= 0 {
			return nil, fmt.Errorf("level %q: wall %d has non-positive size: %w", id, j+1, maze.ErrInvalidLevelData)
		}
		walls = append(walls, core.NewRect(w[0], w[1], w[2], w[3]))
	}

	starts := make([]core.Point, len(yl.Starts))
	for j, s := range yl.Starts {
		starts[j] = core.Point{X: s.X, Y: s.Y}
	}

	return maze.NewLevel(id, yl.Name,
		core.Size{W: yl.Size.W, H: yl.Size.H},
		walls, starts,
		core.Point{X: yl.Goal.X, Y: yl.Goal.Y},
	)
}

// MarshalYAML converts a catalog back to its file representation.
func MarshalYAML(c *Catalog) ([]byte, error) {
	yc := YAMLCatalog{ID: c.ID, Name: c.Name}
	for _, l := range c.Levels {
		yl := YAMLLevel{
			ID:   l.ID(),
			Name: l.Name(),
			Size: YAMLSize{W: l.Bounds().W, H: l.Bounds().H},
			Goal: YAMLPoint{X: l.Goal().X, Y: l.Goal().Y},
		}
		for _, o := range l.Obstacles() {
			yl.Walls = append(yl.Walls, []int{o.X, o.Y, o.W, o.H})
		}
		for slot, n := 0, l.Slots(); slot < n; slot++ {
			p, _ := l.Start(core.SlotID(slot))
			yl.Starts = append(yl.Starts, YAMLPoint{X: p.X, Y: p.Y})
		}
		yc.Levels = append(yc.Levels, yl)
	}
	return yaml.Marshal(yc)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
