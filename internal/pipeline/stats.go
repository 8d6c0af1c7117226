package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"sparkpress/internal/post"
)

// Stats summarizes the published content directory.
type Stats struct {
	Total      int
	ByCategory map[string]int
	ByLanguage map[string]int
}

// CollectStats scans the content directory and tallies published posts by
// category and language. Unparseable files are counted but not bucketed.
func CollectStats(contentDir string) (Stats, error) {
	stats := Stats{
		ByCategory: make(map[string]int),
		ByLanguage: make(map[string]int),
	}
	entries, err := os.ReadDir(contentDir)
	if os.IsNotExist(err) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		stats.Total++
		data, err := os.ReadFile(filepath.Join(contentDir, entry.Name()))
		if err != nil {
			continue
		}
		fields, err := post.ParseFrontMatter(string(data))
		if err != nil {
			continue
		}
		if category := fields["category"]; category != "" {
			stats.ByCategory[category]++
		}
		if language := fields["language"]; language != "" {
			stats.ByLanguage[language]++
		}
	}
	return stats, nil
}
