package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/linkbridge/internal/version"
)

// DefaultTimezone matches the stock Shaarli installation.
const DefaultTimezone = "Europe/Paris"

// Loader reads the optional instance settings file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty path means "defaults only".
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Defaults is the instance reported when no settings file is configured.
func Defaults() Instance {
	return Instance{
		Title:               fmt.Sprintf("LinkBridge v%s REST API v1", version.Version),
		Timezone:            DefaultTimezone,
		EnabledPlugins:      []string{},
		DefaultPrivateLinks: true,
	}
}

// Load reads the settings file and merges it over Defaults.
func (l *Loader) Load() (Instance, error) {
	inst := Defaults()
	if l.filePath == "" {
		return inst, nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return inst, fmt.Errorf("failed to read instance file: %w", err)
	}

	// ${VAR} references are resolved from the environment
	data = []byte(os.ExpandEnv(string(data)))

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return inst, fmt.Errorf("failed to parse instance yaml: %w", err)
	}

	return merge(inst, file), nil
}

func merge(inst Instance, file File) Instance {
	if file.Title != "" {
		inst.Title = file.Title
	}
	if file.Timezone != "" {
		inst.Timezone = file.Timezone
	}
	if file.EnabledPlugins != nil {
		inst.EnabledPlugins = file.EnabledPlugins
	}
	if file.DefaultPrivateLinks != nil {
		inst.DefaultPrivateLinks = *file.DefaultPrivateLinks
	}
	return inst
}
