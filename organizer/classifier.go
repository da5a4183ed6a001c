package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryOthers is the bucket for files whose extension is not part
// of the category table.
const CategoryOthers = "others"

// CategoryTable maps a category name to the extensions it owns. Every
// extension carries its leading dot.
type CategoryTable map[string][]string

// DefaultCategories returns the built-in category table.
func DefaultCategories() CategoryTable {
	return CategoryTable{
		"images":        {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".ico"},
		"documents":     {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".pages"},
		"spreadsheets":  {".xls", ".xlsx", ".csv", ".ods", ".numbers"},
		"presentations": {".ppt", ".pptx", ".odp", ".key"},
		"videos":        {".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm", ".m4v"},
		"audio":         {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"},
		"archives":      {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"},
		"code":          {".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h", ".php", ".rb", ".go", ".rs"},
		"executables":   {".exe", ".msi", ".deb", ".rpm", ".dmg", ".pkg", ".app"},
	}
}

// Classifier assigns a category to a file name based on its final
// extension. Lookups are case insensitive, so "IMG.JPG" and "img.jpg"
// land in the same category.
type Classifier struct {
	byExt map[string]string
}

// NewClassifier builds a classifier from a category table. A nil table
// selects DefaultCategories.
func NewClassifier(table CategoryTable) *Classifier {
	if table == nil {
		table = DefaultCategories()
	}
	byExt := make(map[string]string)
	for category, extensions := range table {
		for _, ext := range extensions {
			byExt[strings.ToLower(ext)] = category
		}
	}
	return &Classifier{byExt: byExt}
}

// Categorize returns the category owning the file's extension, or
// CategoryOthers when no category claims it. Only the final extension
// counts, so "backup.tar.gz" is decided by ".gz".
func (c *Classifier) Categorize(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if category, ok := c.byExt[ext]; ok {
		return category
	}
	return CategoryOthers
}

// LoadCategoryTable reads a category table from a YAML file mapping
// category names to extension lists. Extensions are normalized to
// lower case and must carry their leading dot.
func LoadCategoryTable(path string) (CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category table: %w", err)
	}

	var table CategoryTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse category table: %w", err)
	}

	for category, extensions := range table {
		if category == "" {
			return nil, fmt.Errorf("category table %s contains an empty category name", path)
		}
		for i, ext := range extensions {
			if !strings.HasPrefix(ext, ".") {
				return nil, fmt.Errorf("extension %q in category %q must start with a dot", ext, category)
			}
			extensions[i] = strings.ToLower(ext)
		}
	}
	return table, nil
}
