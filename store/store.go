package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Document keys used by the application.
const (
	KeyCollection = "collection"
	KeySession    = "session"
)

const maxRotatingBackups = 10

// Store is the persistence port: a two-method key/value capability over JSON
// documents. Load reports absence instead of failing on malformed stored
// data; Save reports write failures to the caller without touching its state.
type Store interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

// FileStore keeps one JSON document per key in a directory, with atomic
// writes, a latest backup and a rotating timestamped backup set per key.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Load reads the document stored under key into v. A missing file reports
// (false, nil). A corrupted file is quarantined and the newest valid backup
// is restored in its place; with no valid backup the key reports absent.
func (fs *FileStore) Load(key string, v any) (bool, error) {
	path := fs.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	decodeErr := json.Unmarshal(data, v)
	if decodeErr == nil {
		return true, nil
	}
	if !isCorruptError(decodeErr) {
		return false, decodeErr
	}

	if _, err := moveCorruptFile(path); err != nil {
		return false, fmt.Errorf("quarantine corrupted %s: %w", key, err)
	}
	return restoreLatestValidBackup(path, v)
}

// Save writes v under key using a temporary file and an atomic rename, after
// backing up the previous document.
func (fs *FileStore) Save(key string, v any) error {
	path := fs.path(key)
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	rotatingPath := fmt.Sprintf("%s.bak.%s", path, timestamp)
	if err := os.WriteFile(rotatingPath, data, 0o644); err != nil {
		return err
	}

	return pruneRotatingBackups(path)
}

func pruneRotatingBackups(path string) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= maxRotatingBackups {
		return nil
	}

	sort.Strings(files)
	toDelete := files[:len(files)-maxRotatingBackups]
	for _, old := range toDelete {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func restoreLatestValidBackup(path string, v any) (bool, error) {
	candidates := make([]string, 0, maxRotatingBackups+2)
	latest := path + ".bak"
	if _, err := os.Stat(latest); err == nil {
		candidates = append(candidates, latest)
	}
	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return false, err
	}
	candidates = append(candidates, rotating...)

	sort.SliceStable(candidates, func(i, j int) bool {
		iInfo, iErr := os.Stat(candidates[i])
		jInfo, jErr := os.Stat(candidates[j])
		if iErr != nil || jErr != nil {
			return candidates[i] > candidates[j]
		}
		return iInfo.ModTime().After(jInfo.ModTime())
	})

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if json.Unmarshal(data, v) != nil {
			continue
		}
		// Re-seed the main file so the next load does not have to recover.
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	corruptName := fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext)
	corruptPath := filepath.Join(filepath.Dir(path), corruptName)
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}

func isCorruptError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
