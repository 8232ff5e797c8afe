package battle

import "github.com/gammazero/deque"

// Deck is one side's cards. The front card is the one in play.
type Deck struct {
	cards deque.Deque[*Card]
}

// NewDeck returns a deck holding cards in order, front first
func NewDeck(cards ...*Card) *Deck {
	d := &Deck{}
	d.cards.Grow(len(cards))
	for _, c := range cards {
		d.cards.PushBack(c)
	}
	return d
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return d.cards.Len()
}

// Front returns the card in play, if any
func (d *Deck) Front() (*Card, bool) {
	if d.cards.Len() == 0 {
		return nil, false
	}
	return d.cards.Front(), true
}

// Cards returns the cards front first
func (d *Deck) Cards() []*Card {
	out := make([]*Card, d.cards.Len())
	for i := range out {
		out[i] = d.cards.At(i)
	}
	return out
}

// rotate sends the front card to the back
func (d *Deck) rotate() {
	d.cards.Rotate(1)
}

func (d *Deck) popFront() (*Card, bool) {
	if d.cards.Len() == 0 {
		return nil, false
	}
	return d.cards.PopFront(), true
}

func (d *Deck) pushBack(c *Card) {
	d.cards.PushBack(c)
}

// clone copies every card so the result shares nothing with d
func (d *Deck) clone() *Deck {
	out := &Deck{}
	out.cards.Grow(d.cards.Len())
	for i := 0; i < d.cards.Len(); i++ {
		c := *d.cards.At(i)
		out.cards.PushBack(&c)
	}
	return out
}
