package endpoint

import (
	"os"
	"path/filepath"
	"strings"
)

// Support reports which naming forms the running platform accepts.
type Support struct {
	Paths      bool
	Namespaced bool
}

// Supports returns the naming capability of the current platform. Filesystem
// paths work everywhere; the abstract namespace is Linux-specific.
func Supports() Support {
	return Support{Paths: true, Namespaced: abstractSupported}
}

// Abstract returns the abstract-namespace form of name. The leading '@' is
// the convention the net package uses for the Linux abstract namespace; no
// filesystem entry is ever created for such endpoints.
func Abstract(name string) string {
	return "@" + strings.TrimPrefix(name, "@")
}

// Path returns the path form of name under dir. An empty dir falls back to
// the user runtime directory when set, else the system temp directory.
func Path(dir, name string) string {
	if dir == "" {
		dir = runtimeDir()
	}
	return filepath.Join(dir, name)
}

// Default picks the preferred form for name on this platform: abstract where
// supported, otherwise a path under the runtime directory.
func Default(name string) string {
	if Supports().Namespaced {
		return Abstract(name)
	}
	return Path("", name)
}

// IsAbstract reports whether name is in abstract-namespace form.
func IsAbstract(name string) bool {
	return strings.HasPrefix(name, "@")
}

func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
