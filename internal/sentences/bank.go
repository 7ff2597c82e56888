// Package sentences provides per-language sentence banks with
// uniform random draw.
package sentences

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Bank holds candidate sentences keyed by language code.
type Bank struct {
	rnd      *rand.Rand
	sets     map[string][]string
	fallback string
}

// Builtin returns a bank with the built-in sentence sets, seeded
// with the current time.
func Builtin() *Bank {
	return New(builtin, DefaultLang)
}

// New builds a bank from the given sets with a fallback language for
// unknown codes. Sentences are trimmed; blank entries and languages
// with nothing left are dropped.
func New(sets map[string][]string, fallback string) *Bank {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())), sets, fallback)
}

// NewWithRand is New with an explicit random source, so draws can be
// made deterministic.
func NewWithRand(rnd *rand.Rand, sets map[string][]string, fallback string) *Bank {
	b := &Bank{
		rnd:      rnd,
		sets:     make(map[string][]string, len(sets)),
		fallback: fallback,
	}
	for code, list := range sets {
		b.add(code, list)
	}
	return b
}

func (b *Bank) add(code string, list []string) {
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		b.sets[code] = append(b.sets[code], s)
	}
}

// Pick draws one sentence uniformly from the given language, falling
// back to the default language when the code is unknown. Returns ""
// only when the fallback itself has no sentences.
func (b *Bank) Pick(lang string) string {
	set, ok := b.sets[lang]
	if !ok || len(set) == 0 {
		set = b.sets[b.fallback]
	}
	if len(set) == 0 {
		return ""
	}
	return set[b.rnd.Intn(len(set))]
}

// Has reports whether the bank holds sentences for the code.
func (b *Bank) Has(lang string) bool {
	return len(b.sets[lang]) > 0
}

// Languages lists the available codes in sorted order.
func (b *Bank) Languages() []string {
	codes := make([]string, 0, len(b.sets))
	for code := range b.sets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Size returns the number of sentences held for a code.
func (b *Bank) Size(lang string) int {
	return len(b.sets[lang])
}

// LoadDir merges sentence files from a directory into the bank.
// Each file is named <code>.txt and holds one sentence per line;
// blank lines are skipped. A missing directory is not an error.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sentence dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".txt" {
			continue
		}
		code := strings.TrimSuffix(name, ".txt")
		if code == "" {
			continue
		}
		list, err := loadSentences(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		b.add(code, list)
	}
	return nil
}

// loadSentences reads one sentence per line from the provided path.
func loadSentences(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence file.
			_ = cerr
		}
	}()

	var list []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("sentence file %s is empty", path)
	}
	return list, nil
}
