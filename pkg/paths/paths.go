package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for fqconcat
	EnvConfigDir = "FQCONCAT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for fqconcat
	EnvStateDir = "FQCONCAT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for fqconcat-specific files
	AppDirName = "fqconcat"

	// LogFileName is the name of the log file
	LogFileName = "fqconcat.log"
)

// ConfigFileNames are the user configuration files looked up in ConfigDir,
// in order of preference.
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the full path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// FindConfigFile returns the first existing user configuration file, or ""
// when there is none.
func FindConfigFile() string {
	dir := ConfigDir()
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// OutputPath applies the compression suffix to a requested output path.
func OutputPath(path string, mode types.CompressionMode) string {
	return expandHome(path) + mode.Suffix()
}

// SamePath reports whether two paths name the same location after
// cleaning and resolving them against the working directory. It does not
// follow symlinks.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(expandHome(a))
	absB, errB := filepath.Abs(expandHome(b))
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home := os.Getenv(EnvHome)
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
