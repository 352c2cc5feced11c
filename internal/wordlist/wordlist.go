// Package wordlist provides the built-in vocabulary and word file loading.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var defaultWords = []string{
	"include", "iostream", "vector", "string", "namespace", "std", "const",
	"int", "char", "float", "double", "struct", "class", "public", "private",
	"void", "return", "if", "else", "for", "while", "switch", "case",
	"sizeof", "malloc", "free", "new", "delete", "pointer", "reference",
	"static", "extern", "inline", "template", "typename", "virtual", "override",
	"variable", "function", "method", "parameter", "argument",
	"array", "loop", "condition", "recursion", "algorithm",
	"debug", "compile", "runtime", "syntax", "exception",
	"git", "commit", "push", "pull", "merge", "branch",
	"api", "json", "database", "server", "frontend", "backend",
}

// Default returns a copy of the built-in vocabulary in its fixed order.
func Default() []string {
	out := make([]string, len(defaultWords))
	copy(out, defaultWords)
	return out
}

// LoadWords reads one word per line from the provided file path.
// Blank lines and lines starting with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
