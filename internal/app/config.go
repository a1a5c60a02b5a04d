package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocPath  string // hcl files: model blocks plus any custom classes
	DefsPath string // optional extra hcl definitions (groups, classes)

	LogFormat  string
	LogLevel   string
	ListenPort int // change-stream websocket port; 0 prints instead
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocPath == "" {
		return nil, errors.New("DocPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
