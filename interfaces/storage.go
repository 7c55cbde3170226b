package interfaces

// SnapshotRepository stores one raw snapshot per player per day and the
// duplicate-date redirects.
type SnapshotRepository interface {
	Write(player, date string, raw []byte) error
	Read(player, date string) ([]byte, error)
	Has(player, date string) bool
	Dates(player string) ([]string, error)
	Mapping(player string) (map[string]string, error)
	Remap(player, date, target string) error
}

// PlayerRoster is the set of UUIDs the daily updater snapshots.
type PlayerRoster interface {
	List() ([]string, error)
	Contains(player string) (bool, error)
	Add(player string) error
	Remove(player string) error
}

// AccountLinker maps Discord user IDs to Minecraft UUIDs.
type AccountLinker interface {
	Resolve(discordID string) (string, bool, error)
	Link(discordID, uuid string) error
}
