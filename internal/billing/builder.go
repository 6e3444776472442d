package billing

import (
	"errors"
	"time"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

// Local validation errors. These are checked before any store I/O is
// attempted and are recoverable in place.
var (
	ErrMaterialNotFound = errors.New("material not available at this location")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrIndexOutOfRange  = errors.New("line index out of range")
	ErrEmptyBill        = errors.New("bill has no lines")
)

// RateCatalog resolves a material within a location. Satisfied by
// catalog.Index.
type RateCatalog interface {
	FindByName(name, location string) (domain.MaterialRate, error)
}

// Builder accumulates bill lines for one processing session. The rate on a
// line is snapshotted from the catalog when the line is added; later catalog
// changes do not touch existing lines. Not safe for concurrent use — the
// owning session serializes access.
type Builder struct {
	catalog  RateCatalog
	location string
	lines    []domain.BillLineItem
}

func NewBuilder(catalog RateCatalog, location string) *Builder {
	return &Builder{
		catalog:  catalog,
		location: location,
	}
}

func (b *Builder) AddLine(materialName string, quantity float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	m, err := b.catalog.FindByName(materialName, b.location)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return ErrMaterialNotFound
		}
		return err
	}

	b.lines = append(b.lines, domain.BillLineItem{
		Position: len(b.lines),
		Name:     m.Name,
		Unit:     m.Unit,
		Rate:     m.Rate,
		Quantity: quantity,
	})
	return nil
}

func (b *Builder) RemoveLine(index int) error {
	if index < 0 || index >= len(b.lines) {
		return ErrIndexOutOfRange
	}

	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	for i := range b.lines {
		b.lines[i].Position = i
	}
	return nil
}

func (b *Builder) SetQuantity(index int, quantity float64) error {
	if index < 0 || index >= len(b.lines) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	b.lines[index].Quantity = quantity
	return nil
}

// Total sums the unrounded line totals on every call. Rounding to two digits
// happens only when a value is rendered.
func (b *Builder) Total() float64 {
	var total float64
	for _, li := range b.lines {
		total += li.Total()
	}
	return total
}

func (b *Builder) Lines() []domain.BillLineItem {
	out := make([]domain.BillLineItem, len(b.lines))
	copy(out, b.lines)
	return out
}

// FrozenBill is an immutable snapshot of the builder at finalize time. It is
// what Commit persists; edits to the builder after the snapshot was taken
// never reach it.
type FrozenBill struct {
	Lines    []domain.BillLineItem
	Total    float64
	FrozenAt time.Time
}

func (b *Builder) Finalize() (*FrozenBill, error) {
	if len(b.lines) == 0 {
		return nil, ErrEmptyBill
	}

	return &FrozenBill{
		Lines:    b.Lines(),
		Total:    b.Total(),
		FrozenAt: time.Now(),
	}, nil
}
