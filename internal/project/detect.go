// Package project detects the Angular framework version of a project from
// its package.json manifest.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/zjrosen/ngsteer/internal/log"
)

// angularCore is the package whose declared version identifies the
// framework version.
const angularCore = "@angular/core"

// Detection errors.
var (
	// ErrNoManifest indicates the directory has no package.json.
	ErrNoManifest = errors.New("no package.json found")

	// ErrNotAngular indicates package.json has no @angular/core dependency.
	ErrNotAngular = errors.New("no @angular/core dependency in package.json")
)

// RangeParseError indicates the declared @angular/core range could not be
// reduced to a major version.
type RangeParseError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *RangeParseError) Error() string {
	return fmt.Sprintf("cannot determine Angular major version from range %q: %v", e.Raw, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *RangeParseError) Unwrap() error {
	return e.Err
}

// Detection is the result of detecting a project's Angular version.
type Detection struct {
	// Major is the detected Angular major version.
	Major int

	// Raw is the declared range string, e.g. "^18.2.0".
	Raw string

	// Method names the dependency map the entry was found in
	// ("dependencies" or "devDependencies").
	Method string

	// ManifestPath is the path to the package.json that was read.
	ManifestPath string

	// HasWorkspaceConfig is true when angular.json sits next to the
	// manifest, confirming an Angular CLI workspace.
	HasWorkspaceConfig bool
}

// packageJSON is the slice of the npm manifest we care about.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect reads dir/package.json and extracts the Angular major version from
// the @angular/core entry, checking dependencies before devDependencies.
func Detect(dir string) (Detection, error) {
	manifestPath := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Detection{}, fmt.Errorf("%s: %w", dir, ErrNoManifest)
		}
		return Detection{}, fmt.Errorf("reading %s: %w", manifestPath, err)
	}

	var manifest packageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Detection{}, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	raw, method := "", ""
	if r, ok := manifest.Dependencies[angularCore]; ok {
		raw, method = r, "dependencies"
	} else if r, ok := manifest.DevDependencies[angularCore]; ok {
		raw, method = r, "devDependencies"
	} else {
		return Detection{}, fmt.Errorf("%s: %w", manifestPath, ErrNotAngular)
	}

	major, err := majorFromRange(raw)
	if err != nil {
		return Detection{}, err
	}

	_, statErr := os.Stat(filepath.Join(dir, "angular.json"))

	d := Detection{
		Major:              major,
		Raw:                raw,
		Method:             method,
		ManifestPath:       manifestPath,
		HasWorkspaceConfig: statErr == nil,
	}
	log.Debug(log.CatDetect, "detected Angular version",
		"major", d.Major, "raw", d.Raw, "method", d.Method, "workspace", d.HasWorkspaceConfig)
	return d, nil
}

// majorFromRange reduces an npm version range to its major version. It
// handles the forms that show up in real manifests: exact pins, ^ and ~
// ranges, comparator ranges (">=17 <19"), alternatives ("17 || 18"), and
// x-style wildcards ("18.x"). Bare wildcards carry no version information
// and fail.
func majorFromRange(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "*" || strings.EqualFold(s, "latest") || strings.EqualFold(s, "next") {
		return 0, &RangeParseError{Raw: raw, Err: errors.New("range carries no version")}
	}

	// Lowest alternative, first comparator bound.
	s = strings.TrimSpace(strings.Split(s, "||")[0])
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s = strings.TrimLeft(s, ">=<^~v")

	// 18.x / 18.* pin down to a parseable version.
	s = strings.ReplaceAll(s, ".x", ".0")
	s = strings.ReplaceAll(s, ".X", ".0")
	s = strings.ReplaceAll(s, ".*", ".0")

	v, err := semver.NewVersion(s)
	if err != nil {
		return 0, &RangeParseError{Raw: raw, Err: err}
	}
	return int(v.Major()), nil
}
