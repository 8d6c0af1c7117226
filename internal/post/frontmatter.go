package post

import (
	"bufio"
	"fmt"
	"strings"
)

// FrontMatterFields holds the metadata recovered from a published document.
type FrontMatterFields map[string]string

// ParseFrontMatter extracts the metadata block from document text. Lines are
// split on the first colon; lines without one are ignored. Returns an error
// when no front-matter block is present.
func ParseFrontMatter(document string) (FrontMatterFields, error) {
	scanner := bufio.NewScanner(strings.NewReader(document))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	inBlock := false
	fields := make(FrontMatterFields)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == FenceMarker {
			if inBlock {
				return fields, nil
			}
			inBlock = true
			continue
		}
		if !inBlock {
			if trimmed == "" {
				continue
			}
			return nil, fmt.Errorf("front matter: document does not start with %q", FenceMarker)
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("front matter: scan: %w", err)
	}
	return nil, fmt.Errorf("front matter: missing closing %q", FenceMarker)
}

// Issue describes a single front-matter formatting defect.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidateFrontMatter checks a parsed block for the formatting defects the
// site build chokes on. An empty slice means the block is clean.
func ValidateFrontMatter(fields FrontMatterFields) []Issue {
	var issues []Issue

	if title, ok := fields["title"]; ok {
		if isQuoted(title) {
			issues = append(issues, Issue{Field: "title", Message: "title should not have quotes"})
		}
		if strings.TrimSpace(title) == "" {
			issues = append(issues, Issue{Field: "title", Message: "title is empty"})
		}
	} else {
		issues = append(issues, Issue{Field: "title", Message: "title is missing"})
	}

	for _, required := range []string{"date", "slug", "youtube_id"} {
		if strings.TrimSpace(fields[required]) == "" {
			issues = append(issues, Issue{Field: required, Message: required + " is missing"})
		}
	}

	if id := fields["youtube_id"]; id != "" && len(id) != 11 {
		issues = append(issues, Issue{Field: "youtube_id", Message: "youtube_id is not 11 characters"})
	}

	return issues
}

func isQuoted(value string) bool {
	if len(value) < 2 {
		return false
	}
	first, last := value[0], value[len(value)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}
