package tui

import (
	"github.com/Mr-Dark-debug/tally/internal/analysis"
	"github.com/Mr-Dark-debug/tally/internal/registry"
)

// Source is the read side of the registry the binder renders from.
type Source interface {
	Len(name string) (int, error)
	Events(name string) ([]int64, error)
}

// card is the view state for one counter.
type card struct {
	name    string
	count   int
	summary analysis.CounterSummary
}

var _ registry.Listener = (*Binder)(nil)

// Binder keeps one card per counter, keyed by name, and refreshes a
// card's count from the registry whenever that counter changes.
type Binder struct {
	src   Source
	cards []card
	index map[string]int
	err   error
}

// NewBinder creates an empty binder reading counts from src.
func NewBinder(src Source) *Binder {
	return &Binder{
		src:   src,
		index: make(map[string]int),
	}
}

func (b *Binder) CollectorCreated(name string) { b.CreateCollector(name) }
func (b *Binder) CollectorUpdated(name string) { b.UpdateCollector(name) }

// CreateCollector appends a card for name showing a zero count.
// A name that already has a card is left alone.
func (b *Binder) CreateCollector(name string) {
	if _, ok := b.index[name]; ok {
		return
	}
	b.index[name] = len(b.cards)
	b.cards = append(b.cards, card{
		name:    name,
		summary: analysis.CounterSummary{Name: name},
	})
}

// UpdateCollector sets the card's count to the registry's current length
// for name. On a read error the card keeps its previous values and the
// error is kept for Err.
func (b *Binder) UpdateCollector(name string) {
	i, ok := b.index[name]
	if !ok {
		return
	}

	n, err := b.src.Len(name)
	if err != nil {
		b.err = err
		return
	}
	events, err := b.src.Events(name)
	if err != nil {
		b.err = err
		return
	}

	b.cards[i].count = n
	b.cards[i].summary = analysis.Summarize(name, events)
}

// Len returns the number of cards.
func (b *Binder) Len() int { return len(b.cards) }

// Count returns the displayed count for name.
func (b *Binder) Count(name string) (int, bool) {
	i, ok := b.index[name]
	if !ok {
		return 0, false
	}
	return b.cards[i].count, true
}

// Names returns card names in display order.
func (b *Binder) Names() []string {
	names := make([]string, len(b.cards))
	for i, c := range b.cards {
		names[i] = c.name
	}
	return names
}

// Total returns the sum of all displayed counts.
func (b *Binder) Total() int {
	total := 0
	for _, c := range b.cards {
		total += c.count
	}
	return total
}

// Err returns and clears the last refresh error.
func (b *Binder) Err() error {
	err := b.err
	b.err = nil
	return err
}

func (b *Binder) at(i int) (card, bool) {
	if i < 0 || i >= len(b.cards) {
		return card{}, false
	}
	return b.cards[i], true
}
