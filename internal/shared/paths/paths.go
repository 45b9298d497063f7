package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Layout constants
const (
	// Desktops holds one directory per desktop id
	Desktops = "desktops"

	// Shared holds state not owned by a single desktop
	Shared = "shared"

	// LockFile guards writers sharing one storage root
	LockFile = ".deskos.lock"

	// BlobExt is appended to every blob file
	BlobExt = ".json"

	// Separator joins key segments
	Separator = "/"
)

var segmentPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DesktopPrefix returns the key prefix owned by one desktop
func DesktopPrefix(desktopID string) string {
	return Desktops + Separator + desktopID
}

// DesktopKey returns the full key of a blob owned by one desktop
func DesktopKey(desktopID, key string) string {
	return Join(DesktopPrefix(desktopID), key)
}

// Join joins key segments
func Join(parts ...string) string {
	return strings.Join(parts, Separator)
}

// ValidateKey checks that every segment of key is a safe path component
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	for _, seg := range strings.Split(key, Separator) {
		if !segmentPattern.MatchString(seg) {
			return fmt.Errorf("key %q contains invalid segment %q", key, seg)
		}
	}
	return nil
}

// BlobFile resolves key to its file below root
func BlobFile(root, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	rel := filepath.FromSlash(key) + BlobExt
	return filepath.Join(root, rel), nil
}

// LockPath returns the lock file of a storage root
func LockPath(root string) string {
	return filepath.Join(root, LockFile)
}
