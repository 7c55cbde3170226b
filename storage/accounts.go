package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// AccountLinks maps Discord user IDs to Minecraft UUIDs so commands can
// default to the caller's own account. Backed by a two-column CSV.
type AccountLinks struct {
	path string
	mu   sync.RWMutex
}

// NewAccountLinks opens the link table at <dataPath>/mappedusernames.csv,
// creating an empty file if none exists.
func NewAccountLinks(dataPath string) (*AccountLinks, error) {
	path := filepath.Join(dataPath, constants.AccountLinksFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, apperrors.NewSystemError("LINKS_OPEN",
			fmt.Sprintf("failed to open account links %s", path), err)
	}
	f.Close()
	return &AccountLinks{path: path}, nil
}

func (a *AccountLinks) readLocked() (map[string]string, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, apperrors.NewSystemError("LINKS_READ",
			fmt.Sprintf("failed to read account links %s", a.path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.NewConfigurationError("LINKS_CORRUPT",
			fmt.Sprintf("account links file %s is not valid CSV", a.path), err)
	}

	links := make(map[string]string, len(rows))
	for _, row := range rows {
		links[row[0]] = row[1]
	}
	return links, nil
}

func (a *AccountLinks) writeLocked(links map[string]string) error {
	f, err := os.Create(a.path)
	if err != nil {
		return apperrors.NewSystemError("LINKS_WRITE",
			fmt.Sprintf("failed to write account links %s", a.path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for discordID, uuid := range links {
		if err := w.Write([]string{discordID, uuid}); err != nil {
			return apperrors.NewSystemError("LINKS_WRITE",
				fmt.Sprintf("failed to write account links %s", a.path), err)
		}
	}
	w.Flush()
	return w.Error()
}

// Resolve returns the linked UUID for a Discord user ID.
func (a *AccountLinks) Resolve(discordID string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	links, err := a.readLocked()
	if err != nil {
		return "", false, err
	}
	uuid, ok := links[discordID]
	return uuid, ok, nil
}

// Link associates a Discord user with a UUID, replacing any previous
// link for that user.
func (a *AccountLinks) Link(discordID, uuid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	links, err := a.readLocked()
	if err != nil {
		return err
	}
	links[discordID] = uuid
	if err := a.writeLocked(links); err != nil {
		return err
	}
	utils.Info("Linked Discord user %s to %s", discordID, uuid)
	return nil
}
