// Package sidecar places metadata files next to their movies: it names
// targets from patterns and guards disk writes behind a content comparison
// so untouched files keep their timestamps.
package sidecar

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPattern names the sidecar after the video file.
const DefaultPattern = "{base}.nfo"

// Namer generates sidecar file paths from naming patterns.
type Namer struct {
	pattern string
}

// NewNamer creates a Namer for the given pattern. An empty pattern uses
// the default.
func NewNamer(pattern string) *Namer {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Namer{pattern: pattern}
}

// TargetPath generates the absolute sidecar path for a movie. mediaFile is
// the video file the sidecar belongs to; the sidecar lands in its directory.
func (n *Namer) TargetPath(mediaFile, title string, year int, dialect string) string {
	base := strings.TrimSuffix(filepath.Base(mediaFile), filepath.Ext(mediaFile))
	vars := map[string]any{
		"base":    base,
		"title":   SanitizeFilename(title),
		"year":    year,
		"dialect": dialect,
	}
	return filepath.Join(filepath.Dir(mediaFile), applyPattern(n.pattern, vars))
}

// placeholderPattern matches {name} or {name:02} style placeholders.
var placeholderPattern = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyPattern substitutes variables into a naming pattern.
// Supports {name} for simple substitution and {name:02} for zero-padded integers.
func applyPattern(pattern string, vars map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		val, ok := vars[name]
		if !ok {
			return match
		}

		if len(parts) >= 3 && parts[2] != "" {
			width, err := strconv.Atoi(parts[2])
			if err == nil {
				switch v := val.(type) {
				case int:
					return fmt.Sprintf("%0*d", width, v)
				case int64:
					return fmt.Sprintf("%0*d", width, v)
				}
			}
		}

		return fmt.Sprintf("%v", val)
	})
}

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// multiSpace matches multiple consecutive spaces.
var multiSpace = regexp.MustCompile(`\s+`)

// multiDot matches multiple consecutive dots.
var multiDot = regexp.MustCompile(`\.{2,}`)

// SanitizeFilename removes or replaces characters that are unsafe for filenames.
// This prevents path traversal attacks and filesystem errors.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")

	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")

	name = illegalChars.ReplaceAllString(name, " ")
	name = multiDot.ReplaceAllString(name, ".")
	name = multiSpace.ReplaceAllString(name, " ")

	return strings.Trim(name, " .")
}
