package replaystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"oraj-pole/internal/model"
)

const (
	DefaultRoot     = "out"
	ReplayExtension = ".osr"
)

// Store lays replays out as <root>/<player>/<score>.osr.
type Store struct {
	root string
}

func New(root string) Store {
	root = strings.TrimSpace(root)
	if root == "" {
		root = DefaultRoot
	}
	return Store{root: root}
}

func (s Store) Root() string {
	return s.root
}

// Ensure creates the top-level output directory. An existing directory is not an error.
func (s Store) Ensure() error {
	return Mkdir(s.root)
}

func (s Store) PlayerDir(player model.PlayerID) string {
	return filepath.Join(s.root, player.String())
}

func (s Store) ReplayPath(player model.PlayerID, score model.ScoreID) string {
	return filepath.Join(s.PlayerDir(player), score.String()+ReplayExtension)
}

// Save writes data verbatim, replacing any replay already stored for the same score.
func (s Store) Save(player model.PlayerID, score model.ScoreID, data []byte) (string, error) {
	if err := Mkdir(s.PlayerDir(player)); err != nil {
		return "", err
	}
	path := s.ReplayPath(player, score)
	if err := WriteBytes(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

func WriteBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".oraj-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename for %s: %w", path, err)
	}
	return nil
}
