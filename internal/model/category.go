package model

import "fmt"

// Category identifies the department an emergency is routed to.
type Category string

const (
	Fire    Category = "Fire"
	Crime   Category = "Crime"
	Medical Category = "Medical"
	Other   Category = "Other"
)

// Categories lists every valid category in routing-priority order.
func Categories() []Category {
	return []Category{Fire, Crime, Medical, Other}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case Fire, Crime, Medical, Other:
		return true
	}
	return false
}

// Department returns the routing destination for the category.
func (c Category) Department() string {
	switch c {
	case Fire:
		return "Fire Department"
	case Crime:
		return "Police Department"
	case Medical:
		return "Nearest Hospital"
	default:
		return "General Support Team"
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string into a Category. Unknown values are an error.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("model: unknown category %q", s)
	}
	return c, nil
}
