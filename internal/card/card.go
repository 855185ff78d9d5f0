package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoCard is returned when a selector has not been given a card yet.
	ErrNoCard = errors.New("no card selected")
	// ErrInvalidCard is returned for text that is not a card symbol.
	ErrInvalidCard = errors.New("invalid card")
)

// Symbol is a card as shown on a selector. Suits play no part in the
// analyzer, so only the rank is kept.
type Symbol string

// None is the empty selection.
const None Symbol = ""

const (
	Two   Symbol = "2"
	Three Symbol = "3"
	Four  Symbol = "4"
	Five  Symbol = "5"
	Six   Symbol = "6"
	Seven Symbol = "7"
	Eight Symbol = "8"
	Nine  Symbol = "9"
	Ten   Symbol = "10"
	Jack  Symbol = "J"
	Queen Symbol = "Q"
	King  Symbol = "K"
	Ace   Symbol = "A"
)

var symbols = []Symbol{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Symbols returns every selectable card in selector order.
func Symbols() []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)
	return out
}

// String returns the symbol text
func (s Symbol) String() string {
	return string(s)
}

// IsNone reports whether the selector is still empty
func (s Symbol) IsNone() bool {
	return s == None
}

// IsFace returns true for J, Q and K
func (s Symbol) IsFace() bool {
	return s == Jack || s == Queen || s == King
}

// IsAce returns true if the symbol is an Ace
func (s Symbol) IsAce() bool {
	return s == Ace
}

// Value returns the numeric value used by the estimator. Face cards count
// 10 and an Ace always counts 11. It returns 0 for None or unknown symbols.
func (s Symbol) Value() int {
	v, err := ParseValue(string(s))
	if err != nil {
		return 0
	}
	return v
}

// Index returns the position of the symbol in Symbols(), or -1.
func (s Symbol) Index() int {
	for i, sym := range symbols {
		if sym == s {
			return i
		}
	}
	return -1
}

// Next returns the symbol after s in selector order, wrapping around.
// None steps to the first symbol.
func (s Symbol) Next() Symbol {
	i := s.Index()
	return symbols[(i+1)%len(symbols)]
}

// Prev returns the symbol before s in selector order, wrapping around.
// None steps to the last symbol.
func (s Symbol) Prev() Symbol {
	i := s.Index()
	if i <= 0 {
		return symbols[len(symbols)-1]
	}
	return symbols[i-1]
}

// Parse converts text into a Symbol. Face letters are case-insensitive and
// "T" is accepted for ten.
func Parse(text string) (Symbol, error) {
	t := strings.ToUpper(strings.TrimSpace(text))
	if t == "" {
		return None, ErrNoCard
	}
	if t == "T" {
		return Ten, nil
	}
	sym := Symbol(t)
	if sym.Index() < 0 {
		return None, fmt.Errorf("%w: %q", ErrInvalidCard, text)
	}
	return sym, nil
}

// MustParse parses a symbol and panics on error
func MustParse(text string) Symbol {
	sym, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sym
}

// ParseValue maps card text straight to its numeric value.
func ParseValue(text string) (int, error) {
	sym, err := Parse(text)
	if err != nil {
		return 0, err
	}
	switch {
	case sym.IsFace():
		return 10, nil
	case sym.IsAce():
		return 11, nil
	}
	v, err := strconv.Atoi(string(sym))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, text)
	}
	return v, nil
}
