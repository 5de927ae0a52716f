// Package catalog holds the read-only definition of the HumaniQ courses.
//
// A Catalog is built once at startup and injected wherever course metadata
// is needed; it is never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Module struct {
	ID     int    `yaml:"id" json:"id"`
	Titulo string `yaml:"titulo" json:"titulo"`
}

type Course struct {
	ID           string   `yaml:"id" json:"id"`
	Slug         string   `yaml:"slug" json:"slug"`
	Titulo       string   `yaml:"titulo" json:"titulo"`
	Descricao    string   `yaml:"descricao" json:"descricao"`
	CargaHoraria int      `yaml:"carga_horaria" json:"cargaHoraria"`
	Categoria    string   `yaml:"categoria" json:"categoria"`
	Modulos      []Module `yaml:"modulos" json:"modulos"`
}

func (c Course) TotalModules() int {
	return len(c.Modulos)
}

func (c Course) HasModule(id int) bool {
	for _, m := range c.Modulos {
		if m.ID == id {
			return true
		}
	}
	return false
}

type Catalog struct {
	bySlug map[string]Course
	order  []string
}

type file struct {
	Cursos []Course `yaml:"cursos"`
}

// New validates courses and builds an immutable catalog. Order is preserved.
func New(courses []Course) (*Catalog, error) {
	c := &Catalog{bySlug: make(map[string]Course, len(courses))}
	ids := make(map[string]bool, len(courses))

	for _, course := range courses {
		if course.Slug == "" || course.ID == "" {
			return nil, errors.New("course id and slug are required")
		}
		if _, dup := c.bySlug[course.Slug]; dup {
			return nil, fmt.Errorf("duplicate course slug %q", course.Slug)
		}
		if ids[course.ID] {
			return nil, fmt.Errorf("duplicate course id %q", course.ID)
		}
		seen := make(map[int]bool, len(course.Modulos))
		for _, m := range course.Modulos {
			if m.ID <= 0 {
				return nil, fmt.Errorf("course %q: module ids must be positive, got %d", course.Slug, m.ID)
			}
			if seen[m.ID] {
				return nil, fmt.Errorf("course %q: duplicate module id %d", course.Slug, m.ID)
			}
			seen[m.ID] = true
		}

		mods := make([]Module, len(course.Modulos))
		copy(mods, course.Modulos)
		sort.SliceStable(mods, func(i, j int) bool { return mods[i].ID < mods[j].ID })
		course.Modulos = mods

		ids[course.ID] = true
		c.bySlug[course.Slug] = course
		c.order = append(c.order, course.Slug)
	}
	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return New(f.Cursos)
}

// LoadOrDefault loads path when set, otherwise the built-in catalog.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Get returns a copy of the course so callers cannot alter the catalog.
func (c *Catalog) Get(slug string) (Course, bool) {
	course, ok := c.bySlug[slug]
	if !ok {
		return Course{}, false
	}
	mods := make([]Module, len(course.Modulos))
	copy(mods, course.Modulos)
	course.Modulos = mods
	return course, true
}

func (c *Catalog) List() []Course {
	out := make([]Course, 0, len(c.order))
	for _, slug := range c.order {
		course, _ := c.Get(slug)
		out = append(out, course)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}
