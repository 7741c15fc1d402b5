package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifeduel/src/universe"
)

//LoadTemplates loads the classic seed patterns from the YAML list
//
//	- name: glider
//	  description: moves diagonally
//	  cells: [[1,0],[2,1],[0,2],[1,2],[2,2]]
func LoadTemplates(path string) ([]universe.Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var entries []universe.Template
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for i, t := range entries {
		if t.Name == "" {
			return nil, fmt.Errorf("template #%d has no name", i)
		}
		for _, c := range t.Coordinates {
			if len(c) != 2 {
				return nil, fmt.Errorf("template %q: coordinate %v is not a pair", t.Name, c)
			}
		}
	}
	return entries, nil
}
