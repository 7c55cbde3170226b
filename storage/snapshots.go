// Package storage persists tracking data on disk: raw daily snapshots,
// the duplicate-date mapping, the tracked-player roster, and Discord
// account links.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// SnapshotStore keeps one raw API payload per tracked player per day
// under <root>/trackedplayers/<uuid>/<DD-MM-YY>.json. Days whose data
// matched the previous snapshot byte-for-byte in meaning get no file of
// their own; a per-player mapping.json redirects them to the day that
// holds the data.
type SnapshotStore struct {
	root string
	mu   sync.RWMutex
}

// NewSnapshotStore roots the store at <dataPath>/trackedplayers,
// creating the directory if needed.
func NewSnapshotStore(dataPath string) (*SnapshotStore, error) {
	root := filepath.Join(dataPath, constants.TrackedPlayersDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperrors.NewSystemError("SNAPSHOT_MKDIR",
			fmt.Sprintf("failed to create snapshot root %s", root), err)
	}
	return &SnapshotStore{root: root}, nil
}

// Root returns the snapshot root directory.
func (s *SnapshotStore) Root() string {
	return s.root
}

func (s *SnapshotStore) playerDir(player string) string {
	return filepath.Join(s.root, player)
}

func (s *SnapshotStore) snapshotPath(player, date string) string {
	return filepath.Join(s.playerDir(player), date+".json")
}

// Write stores a raw snapshot for the given player and date,
// overwriting any existing file for that date.
func (s *SnapshotStore) Write(player, date string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.playerDir(player)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewSystemError("SNAPSHOT_MKDIR",
			fmt.Sprintf("failed to create player dir %s", dir), err)
	}
	path := s.snapshotPath(player, date)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return apperrors.NewSystemError("SNAPSHOT_WRITE",
			fmt.Sprintf("failed to write snapshot %s", path), err)
	}
	utils.Debug("Wrote snapshot %s/%s (%d bytes)", player, date, len(raw))
	return nil
}

// Read returns the raw snapshot for a date. When no file exists for the
// date it follows the player's mapping one hop; mapping targets are
// always stored fully resolved, so a single hop suffices. A date with
// neither a file nor a mapping entry yields a not-found error.
func (s *SnapshotStore) Read(player, date string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked(player, date)
}

func (s *SnapshotStore) readLocked(player, date string) ([]byte, error) {
	raw, err := os.ReadFile(s.snapshotPath(player, date))
	if err == nil {
		return raw, nil
	}
	if !os.IsNotExist(err) {
		return nil, apperrors.NewSystemError("SNAPSHOT_READ",
			fmt.Sprintf("failed to read snapshot %s/%s", player, date), err)
	}

	mapping, mapErr := s.mappingLocked(player)
	if mapErr != nil {
		return nil, mapErr
	}
	target, mapped := mapping[date]
	if !mapped {
		return nil, apperrors.NewNotFoundError("SNAPSHOT_NOT_FOUND",
			fmt.Sprintf("no snapshot for %s on %s", player, date),
			constants.MsgNoData)
	}

	raw, err = os.ReadFile(s.snapshotPath(player, target))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("SNAPSHOT_BROKEN_MAPPING",
				fmt.Sprintf("mapping %s -> %s points at a missing snapshot for %s", date, target, player),
				constants.MsgNoData)
		}
		return nil, apperrors.NewSystemError("SNAPSHOT_READ",
			fmt.Sprintf("failed to read mapped snapshot %s/%s", player, target), err)
	}
	return raw, nil
}

// Has reports whether a snapshot (direct or mapped) exists for the date.
func (s *SnapshotStore) Has(player, date string) bool {
	_, err := s.Read(player, date)
	return err == nil
}

// Dates lists every date that has its own snapshot file for this
// player, ascending chronologically. Mapped dates are not included.
func (s *SnapshotStore) Dates(player string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.playerDir(player))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewSystemError("SNAPSHOT_LIST",
			fmt.Sprintf("failed to list snapshots for %s", player), err)
	}

	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == constants.MappingFile {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := utils.ParseDateKey(date); err != nil {
			utils.Warn("Ignoring stray file in snapshot dir for %s: %s", player, name)
			continue
		}
		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool {
		ti, _ := utils.ParseDateKey(dates[i])
		tj, _ := utils.ParseDateKey(dates[j])
		return ti.Before(tj)
	})
	return dates, nil
}

// Mapping returns the player's date redirects. A missing mapping file
// is an empty mapping; a corrupt one is a configuration error.
func (s *SnapshotStore) Mapping(player string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mappingLocked(player)
}

func (s *SnapshotStore) mappingLocked(player string) (map[string]string, error) {
	path := filepath.Join(s.playerDir(player), constants.MappingFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, apperrors.NewSystemError("MAPPING_READ",
			fmt.Sprintf("failed to read mapping for %s", player), err)
	}

	mapping := map[string]string{}
	if len(raw) == 0 {
		return mapping, nil
	}
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, apperrors.NewConfigurationError("MAPPING_CORRUPT",
			fmt.Sprintf("mapping file for %s is not valid JSON", player), err)
	}
	return mapping, nil
}

// Remap records that `date` has no data of its own and resolves to
// `target`. If target is itself mapped, the entry is written pointing
// at target's terminal date, keeping every stored redirect one hop.
func (s *SnapshotStore) Remap(player, date, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, err := s.mappingLocked(player)
	if err != nil {
		return err
	}
	if terminal, mapped := mapping[target]; mapped {
		target = terminal
	}
	mapping[date] = target

	dir := s.playerDir(player)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewSystemError("SNAPSHOT_MKDIR",
			fmt.Sprintf("failed to create player dir %s", dir), err)
	}
	raw, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return apperrors.NewSystemError("MAPPING_ENCODE",
			fmt.Sprintf("failed to encode mapping for %s", player), err)
	}
	path := filepath.Join(dir, constants.MappingFile)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return apperrors.NewSystemError("MAPPING_WRITE",
			fmt.Sprintf("failed to write mapping for %s", player), err)
	}
	utils.Debug("Remapped %s: %s -> %s", player, date, target)
	return nil
}
