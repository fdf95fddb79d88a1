package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

const puzzleExt = ".txt"

var (
	ErrPuzzleNotFound = service.ErrPuzzleNotFound
	ErrInvalidPuzzle  = service.ErrInvalidPuzzle
	ErrInvalidName    = service.ErrInvalidRequest
)

// Manager handles puzzle file loading and caching
type Manager struct {
	puzzleDir string
	puzzles   map[string]*service.Puzzle
	mu        sync.RWMutex
}

// NewManager creates a new puzzle library over puzzleDir
func NewManager(puzzleDir string) (*Manager, error) {
	info, err := os.Stat(puzzleDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", puzzleDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat puzzle directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("puzzle path is not a directory: %s", puzzleDir)
	}

	return &Manager{
		puzzleDir: puzzleDir,
		puzzles:   make(map[string]*service.Puzzle),
	}, nil
}

// Dir returns the directory the library reads from
func (m *Manager) Dir() string {
	return m.puzzleDir
}

// LoadPuzzle loads a puzzle by name, with or without the .txt extension
func (m *Manager) LoadPuzzle(name string) (*service.Puzzle, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if p, exists := m.puzzles[name]; exists {
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if p, exists := m.puzzles[name]; exists {
		return p, nil
	}

	data, err := os.ReadFile(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	b, err := puzzle.LoadString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPuzzle, name, err)
	}

	p := &service.Puzzle{Name: name, Text: string(data), Board: b}
	m.puzzles[name] = p
	return p, nil
}

// ListPuzzles returns every valid puzzle in the directory, sorted by name.
// Files that fail to parse are skipped.
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var infos []*service.PuzzleInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), puzzleExt) {
			continue
		}
		p, err := m.LoadPuzzle(entry.Name())
		if err != nil {
			continue
		}
		infos = append(infos, service.DescribePuzzle(p.Name, p.Board))
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// SavePuzzle validates text and writes it to <name>.txt
func (m *Manager) SavePuzzle(name, text string) (*service.Puzzle, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	b, err := puzzle.LoadString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	if err := os.WriteFile(m.path(name), []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("failed to write puzzle file: %w", err)
	}

	p := &service.Puzzle{Name: name, Text: text, Board: b}
	m.mu.Lock()
	m.puzzles[name] = p
	m.mu.Unlock()

	return p, nil
}

// ReloadPuzzle drops one cached puzzle and reads it from disk again
func (m *Manager) ReloadPuzzle(name string) (*service.Puzzle, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	delete(m.puzzles, name)
	m.mu.Unlock()
	return m.LoadPuzzle(name)
}

// RefreshCache drops every cached puzzle so the next load rereads the disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puzzles = make(map[string]*service.Puzzle)
}

// cleanName strips the extension and rejects names that would resolve
// outside the puzzle directory.
func cleanName(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), puzzleExt)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: puzzle name %q", ErrInvalidName, name)
	}
	return name, nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.puzzleDir, name+puzzleExt)
}
