package settings

// File is the YAML document describing the emulated Shaarli instance.
// Every key is optional.
type File struct {
	Title               string   `yaml:"title"`
	Timezone            string   `yaml:"timezone"`
	EnabledPlugins      []string `yaml:"enabled_plugins"`
	DefaultPrivateLinks *bool    `yaml:"default_private_links"`
}

// Instance is the resolved metadata reported by GET /api/v1/info.
type Instance struct {
	Title               string
	Timezone            string
	EnabledPlugins      []string
	DefaultPrivateLinks bool
}
