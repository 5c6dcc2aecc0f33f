package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/stack"
)

// TimestampLayout is the artifact timestamp format (YYYYMMDD_HHMMSS).
const TimestampLayout = "20060102_150405"

// Extension is the artifact file extension.
const Extension = ".gz"

// ArtifactName returns "<mode>_<YYYYMMDD_HHMMSS>.gz" with t in UTC.
func ArtifactName(mode stack.Mode, t time.Time) string {
	return string(mode) + "_" + t.UTC().Format(TimestampLayout) + Extension
}

// Artifact is a backup file found on disk.
type Artifact struct {
	Path    string
	Mode    stack.Mode
	TakenAt time.Time
	Size    int64
}

// ParseArtifactName extracts the mode and timestamp from an artifact file
// name. ok is false for files that do not follow the naming scheme.
func ParseArtifactName(name string) (mode stack.Mode, takenAt time.Time, ok bool) {
	base, found := strings.CutSuffix(name, Extension)
	if !found {
		return "", time.Time{}, false
	}
	m, stamp, found := strings.Cut(base, "_")
	if !found {
		return "", time.Time{}, false
	}
	parsed, known := stack.ParseMode(m)
	if !known || string(parsed) != m {
		return "", time.Time{}, false
	}
	t, err := time.ParseInLocation(TimestampLayout, stamp, time.UTC)
	if err != nil {
		return "", time.Time{}, false
	}
	return parsed, t, true
}

// List returns the artifacts in the backup directory, newest first.
// A missing directory yields an empty list. Files that don't follow the
// naming scheme are skipped.
func (m *Manager) List() ([]Artifact, error) {
	entries, err := os.ReadDir(m.opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't read backup directory "+m.opts.Dir, "")
	}

	var artifacts []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		mode, takenAt, ok := ParseArtifactName(e.Name())
		if !ok {
			continue
		}
		a := Artifact{
			Path:    filepath.Join(m.opts.Dir, e.Name()),
			Mode:    mode,
			TakenAt: takenAt,
		}
		if info, err := e.Info(); err == nil {
			a.Size = info.Size()
		}
		artifacts = append(artifacts, a)
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].TakenAt.After(artifacts[j].TakenAt)
	})
	return artifacts, nil
}
