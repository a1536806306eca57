package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Pages holds the sidebar defaults of each dashboard page.
type Pages struct {
	Overview  PageDefaults   `toml:"overview" json:"overview"`
	Countries PageDefaults   `toml:"countries" json:"countries"`
	Cities    PageDefaults   `toml:"cities" json:"cities"`
	Cuisines  CuisineDefault `toml:"cuisines" json:"cuisines"`
}

type PageDefaults struct {
	Countries []string `toml:"countries" json:"countries"`
}

type CuisineDefault struct {
	Countries []string    `toml:"countries" json:"countries"`
	Cuisines  []string    `toml:"cuisines" json:"cuisines"`
	TopLimit  int         `toml:"top_limit" json:"topLimit"`
	TopMin    int         `toml:"top_min" json:"topMin"`
	TopMax    int         `toml:"top_max" json:"topMax"`
	Featured  []Highlight `toml:"featured" json:"featured"`
}

// Highlight is a cuisine shown as a "best restaurant" metric.
type Highlight struct {
	Label   string `toml:"label" json:"label"`
	Cuisine string `toml:"cuisine" json:"cuisine"`
}

func DefaultPages() Pages {
	main := []string{"Brazil", "United States of America", "Canada", "England", "Australia", "South Africa"}
	return Pages{
		Overview:  PageDefaults{Countries: main},
		Countries: PageDefaults{Countries: main},
		Cities:    PageDefaults{Countries: main},
		Cuisines: CuisineDefault{
			Countries: []string{"Brazil", "England", "Qatar", "South Africa", "Canada", "Australia"},
			Cuisines:  []string{"Home-made", "BBQ", "Japanese", "Brazilian", "Arabian", "American", "Italian"},
			TopLimit:  10,
			TopMin:    1,
			TopMax:    20,
			Featured: []Highlight{
				{Label: "Italian", Cuisine: "Italian"},
				{Label: "American", Cuisine: "American"},
				{Label: "Arabian", Cuisine: "Arabian"},
				{Label: "Japanese", Cuisine: "Japanese"},
				{Label: "Brazilian", Cuisine: "Brazilian"},
			},
		},
	}
}

// LoadPages overlays the TOML file at path on DefaultPages. A missing file is
// not an error.
func LoadPages(path string) (Pages, error) {
	pages := DefaultPages()
	if path == "" {
		return pages, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pages, nil
		}
		return Pages{}, err
	}

	if err := toml.Unmarshal(data, &pages); err != nil {
		return Pages{}, fmt.Errorf("parse %s: %w", path, err)
	}

	c := &pages.Cuisines
	if c.TopMin < 1 {
		c.TopMin = 1
	}
	if c.TopMax < c.TopMin {
		return Pages{}, fmt.Errorf("cuisines.top_max (%d) below top_min (%d)", c.TopMax, c.TopMin)
	}
	if c.TopLimit < c.TopMin || c.TopLimit > c.TopMax {
		return Pages{}, fmt.Errorf("cuisines.top_limit %d outside [%d, %d]", c.TopLimit, c.TopMin, c.TopMax)
	}

	return pages, nil
}
