package config

import "strings"

const (
	DefaultTemplateName = "_class"
	DefaultExtension    = ".py"
	DefaultOutputFolder = "out/"
	DefaultFileMode     = 0o644
)

// ApplyDefaults sets default values for any unspecified configuration fields.
// Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTemplatesDefaults(&cfg.Templates)
	applyOutputDefaults(&cfg.Output)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applyTemplatesDefaults(cfg *TemplatesConfig) {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultTemplateName
	}
}

func applyOutputDefaults(cfg *OutputConfig) {
	if cfg.Type == "" {
		cfg.Type = "directory"
	}
	cfg.Type = strings.ToLower(cfg.Type)

	ext := strings.TrimSpace(cfg.Extension)
	switch {
	case ext == "":
		ext = DefaultExtension
	case !strings.HasPrefix(ext, "."):
		ext = "." + ext
	}
	cfg.Extension = ext
}

func applyDirectoryDefaults(cfg *DirectoryConfig) {
	if strings.TrimSpace(cfg.Path) == "" {
		cfg.Path = DefaultOutputFolder
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = DefaultFileMode
	}
}
