package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
)

var ErrPathNotFound = errors.New("guided path not found")

// Catalog is the loaded set of categories and their guided paths.
type Catalog struct {
	categories []*domain.Category
	paths      map[string]*domain.GuidedPath // by "category/path"
}

func newCatalog() *Catalog {
	return &Catalog{paths: make(map[string]*domain.GuidedPath)}
}

func (c *Catalog) add(cat *domain.Category, p *domain.GuidedPath) error {
	if _, dup := c.paths[p.Ref()]; dup {
		return fmt.Errorf("path %s is defined twice", p.Ref())
	}
	c.paths[p.Ref()] = p

	for _, existing := range c.categories {
		if existing.ID == cat.ID {
			if existing.Title == "" {
				existing.Title = cat.Title
			}
			if cat.Order != 0 && (existing.Order == 0 || cat.Order < existing.Order) {
				existing.Order = cat.Order
			}
			existing.Paths = append(existing.Paths, p)
			return nil
		}
	}
	cat.Paths = []*domain.GuidedPath{p}
	c.categories = append(c.categories, cat)
	return nil
}

func (c *Catalog) sort() {
	sort.SliceStable(c.categories, func(i, j int) bool {
		a, b := c.categories[i], c.categories[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	for _, cat := range c.categories {
		sort.SliceStable(cat.Paths, func(i, j int) bool {
			a, b := cat.Paths[i], cat.Paths[j]
			if a.Order != b.Order {
				return a.Order < b.Order
			}
			return a.ID < b.ID
		})
	}
}

// Categories returns categories in display order.
func (c *Catalog) Categories() []*domain.Category {
	return c.categories
}

// Paths returns every path in display order.
func (c *Catalog) Paths() []*domain.GuidedPath {
	var out []*domain.GuidedPath
	for _, cat := range c.categories {
		out = append(out, cat.Paths...)
	}
	return out
}

// Path resolves a "category/path" reference. "category_path" progress keys
// are accepted too.
func (c *Catalog) Path(ref string) (*domain.GuidedPath, error) {
	if p, ok := c.paths[ref]; ok {
		return p, nil
	}
	if cat, path, ok := strings.Cut(ref, "_"); ok {
		if p, ok := c.paths[cat+"/"+path]; ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPathNotFound, ref)
}

// Category returns the category with id.
func (c *Catalog) Category(id string) (*domain.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return nil, false
}

// Len returns the number of paths.
func (c *Catalog) Len() int {
	return len(c.paths)
}
