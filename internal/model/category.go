package model

import (
	"errors"
	"fmt"
	"strings"
)

// Color is one of the fixed category palette entries
type Color string

const (
	ColorRed    Color = "bg-red-500"
	ColorYellow Color = "bg-yellow-500"
	ColorGreen  Color = "bg-green-500"
	ColorBlue   Color = "bg-blue-500"
	ColorIndigo Color = "bg-indigo-500"
	ColorPurple Color = "bg-purple-500"
	ColorPink   Color = "bg-pink-500"
)

// Palette lists the category colors in picker order
var Palette = []Color{
	ColorRed,
	ColorYellow,
	ColorGreen,
	ColorBlue,
	ColorIndigo,
	ColorPurple,
	ColorPink,
}

// Valid reports whether c belongs to the palette
func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Name returns the bare color name, e.g. "blue" for bg-blue-500
func (c Color) Name() string {
	s := strings.TrimPrefix(string(c), "bg-")
	return strings.TrimSuffix(s, "-500")
}

// ParseColor accepts either a palette value or a bare color name
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if c.Valid() {
		return c, nil
	}
	c = Color("bg-" + strings.ToLower(s) + "-500")
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// UncategorizedName is shown for tasks without a (resolvable) category
const UncategorizedName = "Uncategorized"

// Category is a named, colored label optionally attached to tasks
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// CategoryUpdate is a partial category update. Nil fields are left untouched.
type CategoryUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *Color  `json:"color,omitempty"`
}

// Validate checks the fields that are present
func (u CategoryUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errors.New("name must not be empty")
	}
	if u.Color != nil && !u.Color.Valid() {
		return fmt.Errorf("invalid color %q", *u.Color)
	}
	return nil
}

// Apply returns c with the update's fields applied
func (u CategoryUpdate) Apply(c Category) Category {
	if u.Name != nil {
		c.Name = strings.TrimSpace(*u.Name)
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	return c
}

// FindCategory looks a category up by id
func FindCategory(categories []Category, id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName resolves a task's category reference for display.
// Dangling references are treated as uncategorized.
func CategoryName(categories []Category, id string) string {
	if c, ok := FindCategory(categories, id); ok {
		return c.Name
	}
	return UncategorizedName
}
