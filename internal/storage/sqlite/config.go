package sqlite

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file, or ":memory:" for a throwaway database
	Path string
	// BusyTimeoutMS is how long a writer waits on a locked database
	BusyTimeoutMS int
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:          "minesweeper.db",
		BusyTimeoutMS: 5000,
	}
}
