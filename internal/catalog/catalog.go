package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// Catalog is the read-only set of counties this deployment evaluates. It is
// loaded once at startup and shared by value lookups only.
type Catalog struct {
	counties map[string]models.County
	ordered  []models.County
}

type catalogFile struct {
	Counties []countyEntry `yaml:"counties"`
}

type countyEntry struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	State       string      `yaml:"state"`
	Coordinates coordsEntry `yaml:"coordinates"`
	Boundary    [][]float64 `yaml:"boundary"`
}

type coordsEntry struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Load reads the county catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw YAML.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}
	if len(file.Counties) == 0 {
		return nil, fmt.Errorf("catalog contains no counties")
	}

	counties := make(map[string]models.County, len(file.Counties))
	for _, e := range file.Counties {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry missing id")
		}
		if _, dup := counties[e.ID]; dup {
			return nil, fmt.Errorf("duplicate county id: %s", e.ID)
		}
		counties[e.ID] = models.County{
			ID:    e.ID,
			Name:  e.Name,
			State: e.State,
			Coordinates: models.Coordinates{
				Latitude:  e.Coordinates.Lat,
				Longitude: e.Coordinates.Lon,
			},
			Boundary: e.Boundary,
		}
	}

	ordered := make([]models.County, 0, len(counties))
	for _, c := range counties {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &Catalog{counties: counties, ordered: ordered}, nil
}

// Get returns the county for id, or models.ErrNotFound.
func (c *Catalog) Get(id string) (models.County, error) {
	county, ok := c.counties[id]
	if !ok {
		return models.County{}, models.ErrNotFound
	}
	return county, nil
}

// List returns all counties ordered by id.
func (c *Catalog) List() []models.County {
	out := make([]models.County, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *Catalog) Len() int {
	return len(c.counties)
}
