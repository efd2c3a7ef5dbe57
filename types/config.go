package types

// AppConfig is the on-disk configuration, stored as YAML.
type AppConfig struct {
	Port                 int    `yaml:"port"`                 // default 80, part of the wire contract
	UploadFolder         string `yaml:"uploadFolder"`         // where received uploads are persisted
	LookupTimeoutSeconds int    `yaml:"lookupTimeoutSeconds"` // bound on mDNS lookups
}
