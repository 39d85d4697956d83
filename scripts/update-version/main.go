// Command update-version rewrites APP_VERSION in src/types.go.
//
// Usage (from the project root): go run ./scripts/update-version 1.2.3
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	semver      = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	versionLine = regexp.MustCompile(`APP_VERSION\s*=\s*"[^"]+"`)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: go run ./scripts/update-version <version>")
		os.Exit(1)
	}
	if err := setVersion(".", os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setVersion(root, version string) error {
	if !semver.MatchString(version) {
		return fmt.Errorf("version must be in format X.Y.Z, got %q", version)
	}

	path := filepath.Join(root, "src", "types.go")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !versionLine.Match(content) {
		return fmt.Errorf("no APP_VERSION constant in %s", path)
	}

	updated := versionLine.ReplaceAll(content, []byte(fmt.Sprintf(`APP_VERSION = "%s"`, version)))
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("✓ Updated %s to %s\n", path, version)
	return nil
}
