// Package words provides the dictionary of playable words and opponent word
// selection.
package words

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"

	"github.com/samdwyer/wordbattle/data"
	"github.com/samdwyer/wordbattle/internal/entity"
)

// Dictionary is an immutable set of playable words.
type Dictionary struct {
	words []string
	index map[string]struct{}
}

// Parse reads one word per line. Words are trimmed and lowercased; anything
// that is not exactly entity.WordLength letters a-z is skipped.
func Parse(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{index: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !playable(word) {
			continue
		}
		if _, dup := d.index[word]; dup {
			continue
		}
		d.index[word] = struct{}{}
		d.words = append(d.words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	if len(d.words) == 0 {
		return nil, fmt.Errorf("word list has no %d-letter words", entity.WordLength)
	}
	sort.Strings(d.words)
	return d, nil
}

// Load reads the embedded word list.
func Load() (*Dictionary, error) {
	f, err := data.FS().Open(data.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", data.WordsFile, err)
	}
	defer f.Close()
	return Parse(f)
}

// MustLoad loads the embedded word list, panicking on error.
func MustLoad() *Dictionary {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// IsValid reports whether word is in the dictionary.
func (d *Dictionary) IsValid(word string) bool {
	_, ok := d.index[strings.ToLower(word)]
	return ok
}

// Random picks a word uniformly using rng.
func (d *Dictionary) Random(rng *rand.Rand) string {
	return d.words[rng.Intn(len(d.words))]
}

// Count returns the number of words.
func (d *Dictionary) Count() int {
	return len(d.words)
}

// Words returns all words in alphabetical order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

func playable(word string) bool {
	if len(word) != entity.WordLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
