package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPatterns reads one pattern per line from path. Blank lines and lines
// starting with # are skipped; surrounding whitespace is trimmed.
func LoadPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := compilePattern(strings.TrimPrefix(line, "!")); err != nil {
			return nil, fmt.Errorf("pattern file %s line %d: %w", path, lineNum, err)
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern file %s: %w", path, err)
	}
	return patterns, nil
}
