package vstest

import "path/filepath"

// ExecutablePath returns where the microsoft.testplatform package of the given
// version keeps vstest.console.exe inside the package cache. The path is not
// checked; a missing runner shows up when it is started.
func ExecutablePath(packageCacheRoot, version string) string {
	return filepath.Join(packageCacheRoot,
		"microsoft.testplatform", version,
		"tools", "net462", "Common7", "IDE", "Extensions", "TestPlatform",
		"vstest.console.exe")
}
