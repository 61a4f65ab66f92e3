package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pscheid92/mergington/internal/domain"
)

// LoadCatalog reads an activity seed in the same shape GET /activities returns.
func LoadCatalog(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read activities file: %w", err)
	}

	var c domain.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse activities file %s: %w", path, err)
	}
	if c.Len() == 0 {
		return domain.Catalog{}, fmt.Errorf("activities file %s defines no activities", path)
	}
	return c, nil
}
