package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/clj/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configDir returns the configuration directory path.
var configDir = pkg.ConfigDir

// cacheDir returns the cache directory path used for transient files.
var cacheDir = pkg.CacheDir

// configPath returns the absolute path to a file or directory formed by
// joining the global configuration directory path with the given path
// elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}

	if err := os.MkdirAll(cacheDir(), defaultDirMode); err != nil {
		return err
	}

	return nil
}
