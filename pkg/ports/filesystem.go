package ports

// DirEntry describes one entry of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ReadDir lists a directory, sorted by name.
	ReadDir(path string) ([]DirEntry, error)

	// Rename moves a file into place, replacing any existing file.
	Rename(oldPath, newPath string) error

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
