package core

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var (
	pluginIDPattern      = regexp.MustCompile(`^[a-z][a-z0-9_]+$`)
	dashboardNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// ValidatePlugins enforces the plugin contract at startup: ids are unique and
// match their manifest, manifests carry a version, and dashboards are named
// uniquely and hold valid JSON.
func ValidatePlugins(plugins []Plugin) error {
	seen := make(map[string]bool)
	for _, plugin := range plugins {
		id := plugin.ID()
		manifest := plugin.Manifest()
		switch {
		case id == "":
			return fmt.Errorf("plugin id is empty")
		case !pluginIDPattern.MatchString(id):
			return fmt.Errorf("plugin id %q does not match %s", id, pluginIDPattern.String())
		case manifest.PluginID != id:
			return fmt.Errorf("plugin id mismatch: id=%q manifest=%q", id, manifest.PluginID)
		case manifest.Version == "":
			return fmt.Errorf("plugin %s: manifest version is empty", id)
		case seen[id]:
			return fmt.Errorf("duplicate plugin id: %s", id)
		}
		seen[id] = true

		if err := validateDashboards(id, plugin.Dashboards()); err != nil {
			return err
		}
	}
	return nil
}

func validateDashboards(pluginID string, dashboards []Dashboard) error {
	names := make(map[string]bool, len(dashboards))
	for _, dash := range dashboards {
		if !dashboardNamePattern.MatchString(dash.Name) {
			return fmt.Errorf("plugin %s: invalid dashboard name %q", pluginID, dash.Name)
		}
		if names[dash.Name] {
			return fmt.Errorf("plugin %s: duplicate dashboard %s", pluginID, dash.Name)
		}
		names[dash.Name] = true
		if !json.Valid(dash.JSON) {
			return fmt.Errorf("plugin %s: dashboard %s is not valid JSON", pluginID, dash.Name)
		}
	}
	return nil
}
