package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/tidwall/jsonc"
)

// appFile is the on-disk shape of a catalog entry. Name and cmd follow the
// launcher config format; id is derived from the name or file when missing.
type appFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Cmd          string `json:"cmd"`
	URL          string `json:"url"`
	Icon         string `json:"icon"`
	Streaming    *bool  `json:"streaming"`
	HideControls *bool  `json:"hide_controls"`
}

// GetAppsDir returns the user's application catalog directory
// (~/.config/aios/apps/), creating it when needed.
func GetAppsDir() (string, error) {
	keepFile, err := xdg.ConfigFile("aios/apps/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get apps directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCatalog reads every *.json and *.jsonc file in dir. Files that fail to
// parse are skipped with a warning so a single bad entry does not keep the
// desktop from starting.
func LoadCatalog(dir string) ([]AppDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read apps directory: %w", err)
	}

	var apps []AppDefinition
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if entry.IsDir() || (!strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".jsonc")) {
			continue
		}

		app, err := LoadAppFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warn("skipping app file", "file", entry.Name(), "err", err)
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// LoadAppFile parses a single catalog entry. Comments and trailing commas are
// accepted.
func LoadAppFile(path string) (AppDefinition, error) {
	// #nosec G304 - path comes from the user's own config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return AppDefinition{}, fmt.Errorf("failed to read app file: %w", err)
	}

	var f appFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return AppDefinition{}, fmt.Errorf("failed to parse app file: %w", err)
	}

	id := f.ID
	if id == "" && f.Name != "" {
		id = slug(f.Name)
	}
	if id == "" {
		base := filepath.Base(path)
		id = slug(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if id == "" {
		return AppDefinition{}, fmt.Errorf("app has no id")
	}
	if f.URL == "" && f.Cmd == "" {
		return AppDefinition{}, fmt.Errorf("app %q has neither url nor cmd", id)
	}

	app := AppDefinition{
		ID:           id,
		DisplayName:  f.Name,
		Icon:         f.Icon,
		URL:          f.URL,
		Streaming:    true,
		HideControls: true,
	}
	if f.Streaming != nil {
		app.Streaming = *f.Streaming
	}
	if f.HideControls != nil {
		app.HideControls = *f.HideControls
	}
	return app, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
