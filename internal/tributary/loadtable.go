package tributary

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadTable holds uniform area loads (kPa) per occupancy category and load
// case. Every category carries one value per entry of Cases.
type LoadTable struct {
	Cases      []string             `yaml:"load_cases" json:"load_cases"`
	Categories map[string][]float64 `yaml:"categories" json:"categories"`
}

// NumCases returns the number of load cases in the table.
func (t LoadTable) NumCases() int {
	if len(t.Cases) > 0 {
		return len(t.Cases)
	}
	if names := t.CategoryNames(); len(names) > 0 {
		return len(t.Categories[names[0]])
	}
	return 0
}

// CategoryNames returns the category names sorted alphabetically.
func (t LoadTable) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for name := range t.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CaseNames returns Cases, or generated names when the table has none.
func (t LoadTable) CaseNames() []string {
	if len(t.Cases) > 0 {
		return t.Cases
	}
	names := make([]string, t.NumCases())
	for i := range names {
		names[i] = fmt.Sprintf("case%d", i+1)
	}
	return names
}

// Validate checks that the table is non-empty and rectangular.
func (t LoadTable) Validate() error {
	if len(t.Categories) == 0 {
		return &LoadTableError{Reason: "no occupancy categories"}
	}
	n := t.NumCases()
	if n == 0 {
		return &LoadTableError{Reason: "no load cases"}
	}
	for _, name := range t.CategoryNames() {
		values := t.Categories[name]
		if len(values) != n {
			return &LoadTableError{
				Category: name,
				Reason:   fmt.Sprintf("has %d load values, expected %d", len(values), n),
			}
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &LoadTableError{Category: name, Reason: fmt.Sprintf("load value %d is not finite", i+1)}
			}
		}
	}
	return nil
}

// UnmarshalYAML accepts either the structured form
//
//	load_cases: [dead, live]
//	categories: {light_occupancy: [2.0, 1.9]}
//
// or the nested form {category: {case: value}}, where the case order is
// taken from the first category in the document.
func (t *LoadTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &LoadTableError{Reason: "expected a mapping"}
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if k := value.Content[i].Value; k == "categories" || k == "load_cases" {
			type plain LoadTable
			var p plain
			if err := value.Decode(&p); err != nil {
				return err
			}
			*t = LoadTable(p)
			return nil
		}
	}
	return t.decodeNested(value)
}

func (t *LoadTable) decodeNested(value *yaml.Node) error {
	t.Cases = nil
	t.Categories = make(map[string][]float64)

	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		loads := value.Content[i+1]
		if loads.Kind != yaml.MappingNode {
			return &LoadTableError{Category: name, Reason: "expected a mapping of load case to value"}
		}

		byCase := make(map[string]float64)
		var order []string
		for j := 0; j+1 < len(loads.Content); j += 2 {
			var v float64
			if err := loads.Content[j+1].Decode(&v); err != nil {
				return &LoadTableError{Category: name, Reason: err.Error()}
			}
			c := loads.Content[j].Value
			byCase[c] = v
			order = append(order, c)
		}

		if t.Cases == nil {
			t.Cases = order
		}
		if len(byCase) != len(t.Cases) {
			return &LoadTableError{
				Category: name,
				Reason:   fmt.Sprintf("has %d load values, expected %d", len(byCase), len(t.Cases)),
			}
		}
		values := make([]float64, len(t.Cases))
		for k, c := range t.Cases {
			v, ok := byCase[c]
			if !ok {
				return &LoadTableError{Category: name, Reason: fmt.Sprintf("missing load case %q", c)}
			}
			values[k] = v
		}
		t.Categories[name] = values
	}
	return nil
}

// LoadTableFromFile reads a YAML or JSON load table and validates it.
func LoadTableFromFile(path string) (LoadTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadTable{}, err
	}
	return ParseLoadTable(data)
}

// ParseLoadTable decodes a YAML or JSON load table and validates it.
func ParseLoadTable(data []byte) (LoadTable, error) {
	var t LoadTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return LoadTable{}, err
	}
	if err := t.Validate(); err != nil {
		return LoadTable{}, err
	}
	return t, nil
}
