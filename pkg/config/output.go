package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DirectoryConfig configures the directory sink.
type DirectoryConfig struct {
	// Path is the existing folder generated files are written into
	Path string `mapstructure:"path" validate:"required"`

	// Staged writes the batch to a temporary folder first and moves files
	// into place only after every definition rendered
	Staged bool `mapstructure:"staged"`

	// CheckWritable probes write access before the first file
	CheckWritable bool `mapstructure:"check_writable"`

	// ConfirmOverwrite prompts before replacing existing files
	ConfirmOverwrite bool `mapstructure:"confirm_overwrite"`

	// FileMode is the permission of created files (e.g., 0644)
	FileMode uint32 `mapstructure:"file_mode" validate:"lte=511"` // 511 = 0777 in decimal
}

// DirectoryOptions decodes, defaults and validates the output.directory
// section.
func (c OutputConfig) DirectoryOptions() (DirectoryConfig, error) {
	var dirCfg DirectoryConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &dirCfg,
	})
	if err != nil {
		return DirectoryConfig{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(c.Directory); err != nil {
		return DirectoryConfig{}, fmt.Errorf("failed to decode output.directory config: %w", err)
	}

	applyDirectoryDefaults(&dirCfg)

	if err := validate.Struct(&dirCfg); err != nil {
		return DirectoryConfig{}, fmt.Errorf("output.directory: %w", formatValidationError(err))
	}
	return dirCfg, nil
}
