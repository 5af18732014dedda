package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/safefile"

	"github.com/oshokin/modpack-installer/internal/domain/install"
	"github.com/oshokin/modpack-installer/internal/logger"
)

// profilesKey is the top-level key holding the profile collection.
const profilesKey = "profiles"

// indent matches the four-space indentation the launcher writes.
const indent = "    "

// defaultFileMode is used when the permissions of the existing store are unknown.
const defaultFileMode os.FileMode = 0o644

var (
	// ErrNotFound is returned when the profile store does not exist.
	ErrNotFound = errors.New("launcher profile store not found")
	// ErrMalformed is returned when the profile store is not a JSON object.
	ErrMalformed = errors.New("launcher profile store is malformed")
)

// Repository stores launch profiles.
type Repository interface {
	Upsert(ctx context.Context, profile *install.LaunchProfile) error
}

var _ Repository = (*FileRepository)(nil)

// FileRepository merges profiles into a JSON file on disk.
type FileRepository struct {
	// path is the location of launcher_profiles.json.
	path string
}

// NewFileRepository returns a repository for the store at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the store.
func (r *FileRepository) Path() string {
	return r.path
}

// Upsert sets profiles[profile.Name] to profile, replacing a previous entry
// with the same name. Every other value in the document is written back as
// it was read.
func (r *FileRepository) Upsert(ctx context.Context, profile *install.LaunchProfile) error {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}

		return fmt.Errorf("read profile store: %w", err)
	}

	document, err := decodeDocument(contents)
	if err != nil {
		return err
	}

	profiles, err := decodeProfiles(document[profilesKey])
	if err != nil {
		return err
	}

	entry, err := marshalRaw(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, replaced := profiles[profile.Name]
	profiles[profile.Name] = entry

	collection, err := marshalRaw(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	document[profilesKey] = collection

	if err = r.write(document); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Launcher profile saved",
		"profile", profile.Name, "replaced", replaced, "path", r.path)

	return nil
}

// write replaces the store through a temporary file in the same directory.
func (r *FileRepository) write(document map[string]json.RawMessage) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)

	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("encode profile store: %w", err)
	}

	mode := defaultFileMode
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}

	file, err := safefile.Create(r.path, mode)
	if err != nil {
		return fmt.Errorf("create temporary profile store: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	if _, err = file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}

	if err = file.Commit(); err != nil {
		return fmt.Errorf("replace profile store: %w", err)
	}

	return nil
}

// marshalRaw encodes v without HTML escaping, as the whole store is written.
func marshalRaw(v any) (json.RawMessage, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeDocument parses the top-level object keeping values as raw JSON.
func decodeDocument(contents []byte) (map[string]json.RawMessage, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(contents, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if document == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	return document, nil
}

// decodeProfiles parses the profile collection; absent or null yields an empty one.
func decodeProfiles(raw json.RawMessage) (map[string]json.RawMessage, error) {
	profiles := make(map[string]json.RawMessage)

	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return profiles, nil
	}

	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, profilesKey, err)
	}

	return profiles, nil
}
