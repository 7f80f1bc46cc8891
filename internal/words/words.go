package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	_ "embed"

	"imposterparty/internal/random"
)

//go:embed words.txt
var defaultWords string

// List is a non-empty set of secret words for the round engine to draw from.
type List struct {
	words []string
}

// New builds a list from an already assembled slice.
func New(ws []string) (*List, error) {
	if len(ws) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return &List{words: ws}, nil
}

// Default returns the embedded word list.
func Default() *List {
	l, err := parse(strings.NewReader(defaultWords))
	if err != nil {
		// The embedded list ships with the binary; an empty one is a build defect.
		panic(err)
	}
	return l
}

// Load reads a word list from a file, one word per line. Blank lines and
// lines starting with # are skipped.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	l, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading word list %s: %w", path, err)
	}
	return l, nil
}

func parse(r io.Reader) (*List, error) {
	var words []string
	scanner := bufio.NewScanner(r)
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
	return &List{words: words}, nil
}

// Random returns a uniformly random word.
func (l *List) Random(src random.Source) string {
	return random.Pick(src, l.words)
}

// Len returns the number of words.
func (l *List) Len() int {
	return len(l.words)
}
