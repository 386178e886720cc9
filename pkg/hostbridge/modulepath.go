package hostbridge

import (
	"os"
	"path/filepath"
)

// ModuleDir returns the directory holding the running executable, falling
// back to the working directory when it cannot be resolved.
func ModuleDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
