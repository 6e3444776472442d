package billing

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

type mockCatalog struct {
	findByNameFunc func(name, location string) (domain.MaterialRate, error)
}

func (m *mockCatalog) FindByName(name, location string) (domain.MaterialRate, error) {
	return m.findByNameFunc(name, location)
}

func fixedCatalog(rates map[string]domain.MaterialRate) *mockCatalog {
	return &mockCatalog{
		findByNameFunc: func(name, location string) (domain.MaterialRate, error) {
			if m, ok := rates[name]; ok {
				return m, nil
			}
			return domain.MaterialRate{}, apperrors.NewNotFoundError(fmt.Sprintf("material %s not found", name))
		},
	}
}

func TestBuilderAddLine(t *testing.T) {
	catalog := fixedCatalog(map[string]domain.MaterialRate{
		"Newspaper": {Name: "Newspaper", Unit: "kg", Rate: 14, Location: "Chennai"},
		"Copper":    {Name: "Copper", Unit: "kg", Rate: 425, Location: "Chennai"},
	})
	b := NewBuilder(catalog, "Chennai")

	if err := b.AddLine("Newspaper", 12.5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := b.AddLine("Copper", 1.2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Position != 0 || lines[1].Position != 1 {
		t.Errorf("expected positions 0,1, got %d,%d", lines[0].Position, lines[1].Position)
	}
	if lines[0].Rate != 14 {
		t.Errorf("expected snapshotted rate 14, got %v", lines[0].Rate)
	}

	want := 12.5*14 + 1.2*425
	if math.Abs(b.Total()-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, b.Total())
	}
}

func TestBuilderAddLineUnknownMaterial(t *testing.T) {
	b := NewBuilder(fixedCatalog(nil), "Chennai")

	err := b.AddLine("Plutonium", 1)
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
	if len(b.Lines()) != 0 {
		t.Errorf("expected no lines after failed add, got %d", len(b.Lines()))
	}
}

func TestBuilderAddLineInvalidQuantity(t *testing.T) {
	catalog := fixedCatalog(map[string]domain.MaterialRate{
		"Newspaper": {Name: "Newspaper", Unit: "kg", Rate: 14},
	})
	b := NewBuilder(catalog, "Chennai")

	for _, q := range []float64{0, -1} {
		if err := b.AddLine("Newspaper", q); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %v: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
}

func TestBuilderRemoveLineReindexes(t *testing.T) {
	catalog := fixedCatalog(map[string]domain.MaterialRate{
		"Newspaper": {Name: "Newspaper", Unit: "kg", Rate: 14},
		"Copper":    {Name: "Copper", Unit: "kg", Rate: 425},
		"Bottles":   {Name: "Bottles", Unit: "piece", Rate: 2},
	})
	b := NewBuilder(catalog, "Chennai")
	for _, name := range []string{"Newspaper", "Copper", "Bottles"} {
		if err := b.AddLine(name, 1); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	if err := b.RemoveLine(1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Newspaper" || lines[1].Name != "Bottles" {
		t.Errorf("unexpected lines after removal: %s, %s", lines[0].Name, lines[1].Name)
	}
	if lines[0].Position != 0 || lines[1].Position != 1 {
		t.Errorf("expected reindexed positions 0,1, got %d,%d", lines[0].Position, lines[1].Position)
	}
}

func TestBuilderRemoveLineOutOfRange(t *testing.T) {
	b := NewBuilder(fixedCatalog(nil), "Chennai")

	if err := b.RemoveLine(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := b.RemoveLine(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBuilderSetQuantity(t *testing.T) {
	catalog := fixedCatalog(map[string]domain.MaterialRate{
		"Newspaper": {Name: "Newspaper", Unit: "kg", Rate: 14},
	})
	b := NewBuilder(catalog, "Chennai")
	if err := b.AddLine("Newspaper", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := b.SetQuantity(0, 3.5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := b.Lines()[0].Quantity; got != 3.5 {
		t.Errorf("expected quantity 3.5, got %v", got)
	}

	if err := b.SetQuantity(0, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := b.SetQuantity(5, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBuilderFinalizeEmpty(t *testing.T) {
	b := NewBuilder(fixedCatalog(nil), "Chennai")

	if _, err := b.Finalize(); !errors.Is(err, ErrEmptyBill) {
		t.Fatalf("expected ErrEmptyBill, got %v", err)
	}
}

func TestBuilderFrozenBillImmutable(t *testing.T) {
	catalog := fixedCatalog(map[string]domain.MaterialRate{
		"Newspaper": {Name: "Newspaper", Unit: "kg", Rate: 14},
		"Copper":    {Name: "Copper", Unit: "kg", Rate: 425},
	})
	b := NewBuilder(catalog, "Chennai")
	if err := b.AddLine("Newspaper", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	frozen, err := b.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	frozenTotal := frozen.Total

	if err := b.AddLine("Copper", 10); err != nil {
		t.Fatalf("add after finalize: %v", err)
	}
	if err := b.SetQuantity(0, 100); err != nil {
		t.Fatalf("set quantity after finalize: %v", err)
	}

	if len(frozen.Lines) != 1 {
		t.Errorf("expected frozen snapshot to keep 1 line, got %d", len(frozen.Lines))
	}
	if frozen.Total != frozenTotal {
		t.Errorf("expected frozen total unchanged, got %v", frozen.Total)
	}
	if frozen.Lines[0].Quantity != 2 {
		t.Errorf("expected frozen quantity 2, got %v", frozen.Lines[0].Quantity)
	}
}

func TestBuilderRateSnapshotSurvivesCatalogChange(t *testing.T) {
	rate := 14.0
	catalog := &mockCatalog{
		findByNameFunc: func(name, location string) (domain.MaterialRate, error) {
			return domain.MaterialRate{Name: name, Unit: "kg", Rate: rate}, nil
		},
	}
	b := NewBuilder(catalog, "Chennai")
	if err := b.AddLine("Newspaper", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	rate = 99

	if got := b.Lines()[0].Rate; got != 14 {
		t.Errorf("expected existing line to keep rate 14, got %v", got)
	}
	if err := b.AddLine("Newspaper", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := b.Lines()[1].Rate; got != 99 {
		t.Errorf("expected new line to take rate 99, got %v", got)
	}
}
