package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMax is the number of entries kept when no cap is configured.
const DefaultMax = 20

// ErrCorrupt is returned by Load when the file cannot be parsed. The store
// is still usable and starts empty; the unreadable file is moved aside.
var ErrCorrupt = errors.New("corrupt history file")

// Entry is a flat snapshot of one calculation.
type Entry struct {
	ID                          string             `json:"id"`
	BankID                      domain.BankID      `json:"bank_id"`
	BankName                    string             `json:"bank_name"`
	Salario                     decimal.Decimal    `json:"salario"`
	Meses                       int                `json:"meses"`
	Parcela                     domain.Installment `json:"parcela"`
	IncluirContribuicaoSindical bool               `json:"incluir_contribuicao_sindical"`
	TotalBruto                  decimal.Decimal    `json:"total_bruto"`
	TotalLiquido                decimal.Decimal    `json:"total_liquido"`
	CalculatedAt                time.Time          `json:"calculated_at"`
}

// NewEntry snapshots a calculation.
func NewEntry(calc domain.PlrCalculation, now time.Time) Entry {
	return Entry{
		ID:                          uuid.NewString(),
		BankID:                      calc.BankID,
		BankName:                    calc.BankName,
		Salario:                     calc.Salario,
		Meses:                       calc.MesesTrabalhados,
		Parcela:                     calc.Parcela,
		IncluirContribuicaoSindical: calc.ContribuicaoSindical.IsPositive(),
		TotalBruto:                  calc.TotalBruto,
		TotalLiquido:                calc.TotalLiquido,
		CalculatedAt:                now.UTC(),
	}
}

// Store is a file-backed log of entries, newest first, capped at Max.
// It is safe for concurrent use.
type Store struct {
	path    string
	max     int
	mu      sync.Mutex
	entries []Entry
}

// NewStore creates a store backed by path. Call Load to restore it.
func NewStore(path string, max int) *Store {
	if max < 1 {
		max = DefaultMax
	}
	return &Store{path: path, max: max}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load restores the entries from disk. A missing file is an empty history
// and an unreadable file is an error. A corrupt file is renamed to
// "<path>.corrupt" and Load returns ErrCorrupt with the store left empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history %s: %w", s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.entries = nil
		aside := s.path + ".corrupt"
		if rerr := os.Rename(s.path, aside); rerr != nil {
			return fmt.Errorf("%w %s (%v), could not move it aside: %v", ErrCorrupt, s.path, err, rerr)
		}
		return fmt.Errorf("%w %s moved to %s: %v", ErrCorrupt, s.path, aside, err)
	}
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	s.entries = entries
	return nil
}

// Append adds e at the front and evicts the oldest entries beyond the cap.
func (s *Store) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.entries)+1)
	entries = append(entries, e)
	entries = append(entries, s.entries...)
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	return s.commit(entries)
}

// Remove deletes the entry at index (0 is the newest).
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("history index %d out of range (0..%d)", index, len(s.entries)-1)
	}
	entries := make([]Entry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:index]...)
	entries = append(entries, s.entries[index+1:]...)
	return s.commit(entries)
}

// Clear removes every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(nil)
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// commit writes entries to disk and only then swaps them in, so a failed
// write leaves the in-memory log unchanged. Callers hold mu.
func (s *Store) commit(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}
	s.entries = entries
	return nil
}
