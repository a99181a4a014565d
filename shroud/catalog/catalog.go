// Package catalog holds board definitions for shroud generation.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"

	"github.com/nathanworms/3dprints/shroud"
	"gopkg.in/yaml.v3"
)

// Catalog maps board names to their definitions.
type Catalog struct {
	boards map[string]shroud.BoardSpec
}

// New returns a catalog with the given boards. Boards are validated.
func New(boards ...shroud.BoardSpec) (*Catalog, error) {
	c := &Catalog{boards: make(map[string]shroud.BoardSpec, len(boards))}
	if err := c.Merge(boards...); err != nil {
		return nil, err
	}
	return c, nil
}

// Builtin returns a catalog holding the builtin boards.
func Builtin() *Catalog {
	c, err := New(builtinBoards()...)
	if err != nil {
		panic("bug: invalid builtin board: " + err.Error())
	}
	return c
}

// Lookup returns a copy of the board named name or *shroud.UnknownBoardError.
func (c *Catalog) Lookup(name string) (shroud.BoardSpec, error) {
	b, ok := c.boards[name]
	if !ok {
		return shroud.BoardSpec{}, &shroud.UnknownBoardError{Name: name, Available: c.Names()}
	}
	b.PinMap = maps.Clone(b.PinMap)
	return b, nil
}

// Names returns the board names in the catalog, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.boards))
	for name := range c.boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge validates boards and adds them to the catalog, replacing boards
// with the same name. Nothing is added if any board is invalid.
func (c *Catalog) Merge(boards ...shroud.BoardSpec) error {
	for _, b := range boards {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("board %q: %w", b.Name, err)
		}
	}
	for _, b := range boards {
		b.PinMap = maps.Clone(b.PinMap)
		c.boards[b.Name] = b
	}
	return nil
}

type file struct {
	Boards []shroud.BoardSpec `yaml:"boards"`
}

// Load decodes a YAML board list. Unknown fields are rejected.
//
//	boards:
//	  - name: MyBoard
//	    pins_per_row: 15
//	    pin_pitch: 2.54
//	    row_spacing: 22.86
//	    pin_length: 6
//	    row_sign: [-1, 1]
//	    pin_map:
//	      VIN: {row: 0, index: 14}
func Load(r io.Reader) ([]shroud.BoardSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	err := dec.Decode(&f)
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty board catalog")
	} else if err != nil {
		return nil, fmt.Errorf("decoding board catalog: %w", err)
	}
	if len(f.Boards) == 0 {
		return nil, errors.New("board catalog has no boards")
	}
	seen := make(map[string]bool, len(f.Boards))
	for _, b := range f.Boards {
		if seen[b.Name] {
			return nil, fmt.Errorf("duplicate board %q in catalog", b.Name)
		}
		seen[b.Name] = true
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("board %q: %w", b.Name, err)
		}
	}
	return f.Boards, nil
}

// LoadFile reads a YAML board list from path and merges it into c.
func (c *Catalog) LoadFile(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	boards, err := Load(fp)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.Merge(boards...)
}
