package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(bruto int64) Entry {
	return Entry{
		ID:           uuid.NewString(),
		BankID:       domain.BankItau,
		BankName:     "Itaú Unibanco",
		Salario:      decimal.NewFromInt(5000),
		Meses:        12,
		Parcela:      domain.InstallmentTotal,
		TotalBruto:   decimal.NewFromInt(bruto),
		TotalLiquido: decimal.NewFromInt(bruto - 100),
		CalculatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newStore(t *testing.T, max int) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "history.json"), max)
	require.NoError(t, s.Load())
	return s
}

func TestStore_AppendNewestFirstWithCap(t *testing.T) {
	s := newStore(t, 3)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.Append(entry(i*1000)))
	}

	entries := s.Entries()
	require.Len(t, entries, 3, "oldest entries should be evicted")
	assert.True(t, entries[0].TotalBruto.Equal(decimal.NewFromInt(5000)), "newest first")
	assert.True(t, entries[2].TotalBruto.Equal(decimal.NewFromInt(3000)))
}

func TestStore_PersistsAcrossLoads(t *testing.T) {
	s := newStore(t, 5)
	require.NoError(t, s.Append(entry(1000)))
	require.NoError(t, s.Append(entry(2000)))

	restored := NewStore(s.Path(), 5)
	require.NoError(t, restored.Load())

	entries := restored.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].TotalBruto.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, domain.BankItau, entries[0].BankID)
	assert.True(t, entries[0].CalculatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestStore_LoadTruncatesToCap(t *testing.T) {
	s := newStore(t, 10)
	for i := int64(1); i <= 6; i++ {
		require.NoError(t, s.Append(entry(i)))
	}

	smaller := NewStore(s.Path(), 4)
	require.NoError(t, smaller.Load())
	assert.Equal(t, 4, smaller.Len())
}

func TestStore_Remove(t *testing.T) {
	s := newStore(t, 5)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, s.Append(entry(i*1000)))
	}

	require.NoError(t, s.Remove(1))
	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].TotalBruto.Equal(decimal.NewFromInt(3000)))
	assert.True(t, entries[1].TotalBruto.Equal(decimal.NewFromInt(1000)))

	assert.Error(t, s.Remove(2))
	assert.Error(t, s.Remove(-1))
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t, 5)
	require.NoError(t, s.Append(entry(1000)))
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())

	restored := NewStore(s.Path(), 5)
	require.NoError(t, restored.Load())
	assert.Equal(t, 0, restored.Len())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path, 5)
	err := s.Load()
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 0, s.Len(), "a corrupt file starts an empty history")

	aside, readErr := os.ReadFile(path + ".corrupt")
	require.NoError(t, readErr, "the corrupt file should be kept aside")
	assert.Equal(t, "{not json", string(aside))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, s.Append(entry(1000)))
	restored := NewStore(path, 5)
	require.NoError(t, restored.Load())
	assert.Equal(t, 1, restored.Len())
}

func TestStore_DefaultMax(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "h.json"), 0)
	for i := 0; i < DefaultMax+5; i++ {
		require.NoError(t, s.Append(entry(int64(i))))
	}
	assert.Equal(t, DefaultMax, s.Len())
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s := newStore(t, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(entry(int64(i))), fmt.Sprintf("append %d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
}

func TestNewEntry(t *testing.T) {
	calc := domain.PlrCalculation{
		BankID:               domain.BankSafra,
		BankName:             "Banco Safra",
		Salario:              decimal.NewFromInt(5000),
		MesesTrabalhados:     12,
		Parcela:              domain.InstallmentSegunda,
		TotalBruto:           decimal.RequireFromString("15369.52"),
		ContribuicaoSindical: decimal.RequireFromString("230.54"),
		TotalLiquido:         decimal.RequireFromString("13985.60"),
	}
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	e := NewEntry(calc, now)

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err, "entry id should be a UUID")
	assert.Equal(t, domain.BankSafra, e.BankID)
	assert.Equal(t, 12, e.Meses)
	assert.Equal(t, domain.InstallmentSegunda, e.Parcela)
	assert.True(t, e.IncluirContribuicaoSindical)
	assert.True(t, e.TotalLiquido.Equal(decimal.RequireFromString("13985.60")))
	assert.Equal(t, time.UTC, e.CalculatedAt.Location())
	assert.True(t, e.CalculatedAt.Equal(now))
}
