package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// TrackedPlayers is the newline-delimited roster of UUIDs the daily
// updater snapshots. Adds append; removes rewrite the file without the
// removed entry.
type TrackedPlayers struct {
	path string
	mu   sync.RWMutex
}

// NewTrackedPlayers opens the roster at <dataPath>/trackedplayers.txt,
// creating an empty file if none exists.
func NewTrackedPlayers(dataPath string) (*TrackedPlayers, error) {
	path := filepath.Join(dataPath, constants.TrackedPlayersFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, apperrors.NewSystemError("ROSTER_OPEN",
			fmt.Sprintf("failed to open roster %s", path), err)
	}
	f.Close()
	return &TrackedPlayers{path: path}, nil
}

// List returns every tracked UUID in file order.
func (t *TrackedPlayers) List() ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listLocked()
}

func (t *TrackedPlayers) listLocked() ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, apperrors.NewSystemError("ROSTER_READ",
			fmt.Sprintf("failed to read roster %s", t.path), err)
	}
	defer f.Close()

	var players []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		players = append(players, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewSystemError("ROSTER_READ",
			fmt.Sprintf("failed to scan roster %s", t.path), err)
	}
	return players, nil
}

// Contains reports whether the UUID is on the roster.
func (t *TrackedPlayers) Contains(player string) (bool, error) {
	players, err := t.List()
	if err != nil {
		return false, err
	}
	player = strings.ToLower(player)
	for _, p := range players {
		if p == player {
			return true, nil
		}
	}
	return false, nil
}

// Add appends the UUID to the roster. Adding an already-tracked player
// is a no-op.
func (t *TrackedPlayers) Add(player string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player = strings.ToLower(player)
	players, err := t.listLocked()
	if err != nil {
		return err
	}
	for _, p := range players {
		if p == player {
			return nil
		}
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.NewSystemError("ROSTER_APPEND",
			fmt.Sprintf("failed to open roster %s for append", t.path), err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, player); err != nil {
		return apperrors.NewSystemError("ROSTER_APPEND",
			fmt.Sprintf("failed to append to roster %s", t.path), err)
	}
	utils.Info("Now tracking player %s", player)
	return nil
}

// Remove rewrites the roster without the given UUID. Removing an
// untracked player is a no-op. Snapshot files are left in place.
func (t *TrackedPlayers) Remove(player string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player = strings.ToLower(player)
	players, err := t.listLocked()
	if err != nil {
		return err
	}

	var kept []string
	removed := false
	for _, p := range players {
		if p == player {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}

	var sb strings.Builder
	for _, p := range kept {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(t.path, []byte(sb.String()), 0o644); err != nil {
		return apperrors.NewSystemError("ROSTER_WRITE",
			fmt.Sprintf("failed to rewrite roster %s", t.path), err)
	}
	utils.Info("Stopped tracking player %s", player)
	return nil
}
