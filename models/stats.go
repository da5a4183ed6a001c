package models

// FileValue pairs a file path with an already formatted value, a human
// byte size or a timestamp depending on the list it belongs to.
type FileValue struct {
	Path  string
	Value string
}

// SizeRange is one bucketing rule: Min inclusive, Max exclusive.
// Max == -1 means unbounded.
type SizeRange struct {
	Min   int64
	Max   int64
	Label string
}

type DirectoryStats struct {
	TotalFiles   int64
	TotalSize    int64
	Categories   map[string]int64
	SizeBuckets  map[string]int64
	LargestFiles []FileValue
	OldestFiles  []FileValue
	NewestFiles  []FileValue
}

// DuplicateGroup holds all paths sharing one content digest, in
// traversal order. The first path is the one kept on removal.
type DuplicateGroup struct {
	Hash  string
	Paths []string
}
