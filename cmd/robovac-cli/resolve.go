package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joshp123/gohome-robovac/plugins/robovac"
)

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "_", "-", "_", "__", "_")
	name = replacer.Replace(name)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return name
}

// resolveVacuum matches a vacuum by id first, then by normalized name.
func resolveVacuum(input string, vacuums []robovac.EntityView) (string, error) {
	for _, v := range vacuums {
		if v.ID == input {
			return v.ID, nil
		}
	}
	needle := normalizeName(input)
	available := make([]string, 0, len(vacuums))
	for _, v := range vacuums {
		if normalizeName(v.Name) == needle {
			return v.ID, nil
		}
		available = append(available, v.Name)
	}
	sort.Strings(available)
	return "", fmt.Errorf("vacuum %q not found. Available: %s", input, strings.Join(available, ", "))
}
