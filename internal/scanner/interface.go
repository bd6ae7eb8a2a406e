package scanner

// Scanner discovers media files under a root directory.
type Scanner interface {
	// Scan walks root recursively and returns every subdirectory and every
	// matching file, both sorted. Any read error aborts the scan.
	Scan(root string) (Result, error)
	// Match reports whether a file name passes the extension allow-list and
	// is not hidden.
	Match(name string) bool
}

// Result holds the output of a Scan.
type Result struct {
	Subdirectories []string
	Files          []string
}
