package config

// Config is the enable-fn tool configuration. Every field has a built-in
// default, so the config file is optional and may set only the fields it
// wants to override.
type Config struct {
	// Fnmode is the fnmode value applied by the fix (0-3, default: 2).
	Fnmode uint8 `toml:"fnmode" json:"fnmode" validate:"fnmode"`
	// OptionsLineTemplate renders the modprobe.d options line. Available variables: {{fnmode}}.
	OptionsLineTemplate string `toml:"options_line_template" json:"options_line_template" validate:"required"`
	// Paths holds filesystem locations used by the tool.
	Paths *PathsConfig `toml:"paths" json:"paths" validate:"required"`

	_absConfigFilePath string
}

// PathsConfig holds the filesystem locations edited or read by enable-fn.
type PathsConfig struct {
	// ModprobeConf is the modprobe.d config file holding the options line.
	ModprobeConf string `toml:"modprobe_conf" json:"modprobe_conf" validate:"required,abs_path"`
	// SysfsParam is the writable sysfs file for the runtime fnmode parameter.
	SysfsParam string `toml:"sysfs_param" json:"sysfs_param" validate:"required,abs_path"`
	// BackupDir is the directory for pre-edit backups of the config file.
	BackupDir string `toml:"backup_dir" json:"backup_dir" validate:"required,abs_path"`
}

const (
	DefaultFnmode              = 2
	DefaultOptionsLineTemplate = "options hid_apple fnmode={{fnmode}}"
	DefaultModprobeConf        = "/etc/modprobe.d/hid_apple.conf"
	DefaultSysfsParam          = "/sys/module/hid_apple/parameters/fnmode"
	DefaultBackupDir           = "/var/backups/enable-fn.d"
)

// Default returns a configuration with all built-in defaults applied.
func Default() *Config {
	return &Config{
		Fnmode:              DefaultFnmode,
		OptionsLineTemplate: DefaultOptionsLineTemplate,
		Paths: &PathsConfig{
			ModprobeConf: DefaultModprobeConf,
			SysfsParam:   DefaultSysfsParam,
			BackupDir:    DefaultBackupDir,
		},
	}
}
