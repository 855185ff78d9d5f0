package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/bjodds/internal/card"
	"github.com/lox/bjodds/internal/estimator"
)

// DefaultPulse is how long a fresh result stays highlighted
const DefaultPulse = 500 * time.Millisecond

// View is the page a front end is showing
type View int

const (
	Home View = iota
	Calculator
)

// String returns the view name
func (v View) String() string {
	switch v {
	case Home:
		return "home"
	case Calculator:
		return "calculator"
	default:
		return "unknown"
	}
}

// ParseView converts a view name into a View
func ParseView(s string) (View, error) {
	switch s {
	case "home", "":
		return Home, nil
	case "calculator":
		return Calculator, nil
	default:
		return Home, fmt.Errorf("unknown view %q", s)
	}
}

// Slot identifies one of the three card selectors
type Slot int

const (
	PlayerFirst Slot = iota
	PlayerSecond
	Dealer
)

// Slots lists the selectors in focus order
var Slots = []Slot{PlayerFirst, PlayerSecond, Dealer}

// String returns the slot name used on the wire
func (s Slot) String() string {
	switch s {
	case PlayerFirst:
		return "player1"
	case PlayerSecond:
		return "player2"
	case Dealer:
		return "dealer"
	default:
		return "unknown"
	}
}

// ParseSlot converts a wire name into a Slot
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if slot.String() == s {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", s)
}

// Option configures a State
type Option func(*State)

// WithClock sets the clock driving the pulse timer
func WithClock(clock quartz.Clock) Option {
	return func(s *State) { s.clock = clock }
}

// WithPulse sets how long a result stays highlighted. Zero disables it.
func WithPulse(d time.Duration) Option {
	return func(s *State) { s.pulse = d }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *State) { s.logger = logger.WithPrefix("session") }
}

// WithPulseEnd registers a callback run after a pulse clears itself. It is
// called without the state lock held.
func WithPulseEnd(fn func()) Option {
	return func(s *State) { s.onPulseEnd = fn }
}

// State is the transient form state behind one front end: the current view,
// the three selectors, the latest result and its highlight pulse. It is
// safe for concurrent use.
type State struct {
	mu sync.Mutex

	clock      quartz.Clock
	pulse      time.Duration
	logger     *log.Logger
	onPulseEnd func()

	view    View
	cards   [3]card.Symbol
	result  *estimator.Result
	pulsing bool
	gen     uint64
	timer   *quartz.Timer
}

// New creates an empty State on the home view
func New(opts ...Option) *State {
	s := &State{
		clock:  quartz.NewReal(),
		pulse:  DefaultPulse,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the current view
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView switches between the landing and calculator views. Selections and
// the last result are kept.
func (s *State) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// Card returns the symbol held by a selector
func (s *State) Card(slot Slot) card.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards[slot]
}

// Select puts a symbol (or card.None) into a selector. Changing a selector
// leaves the previous result on display until the next Compute.
func (s *State) Select(slot Slot, sym card.Symbol) error {
	if slot < PlayerFirst || slot > Dealer {
		return fmt.Errorf("unknown slot %d", slot)
	}
	if !sym.IsNone() && sym.Index() < 0 {
		return fmt.Errorf("%w: %q", card.ErrInvalidCard, sym)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[slot] = sym
	return nil
}

// SetPlayerCard sets player card i (0 or 1)
func (s *State) SetPlayerCard(i int, sym card.Symbol) error {
	if i < 0 || i > 1 {
		return fmt.Errorf("player card index out of range: %d", i)
	}
	return s.Select(Slot(i), sym)
}

// SetDealerCard sets the dealer upcard
func (s *State) SetDealerCard(sym card.Symbol) error {
	return s.Select(Dealer, sym)
}

// Hand returns the selectors as an estimator hand
func (s *State) Hand() estimator.Hand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand()
}

func (s *State) hand() estimator.Hand {
	return estimator.Hand{
		Player: [2]card.Symbol{s.cards[PlayerFirst], s.cards[PlayerSecond]},
		Dealer: s.cards[Dealer],
	}
}

// CanCompute reports whether every selector holds a card. Front ends use it
// to enable the calculate control.
func (s *State) CanCompute() bool {
	return s.Hand().Ready()
}

// Compute runs the estimator over the current selectors, replaces the
// stored result and starts a new pulse. Any pulse still running is
// superseded.
func (s *State) Compute() (estimator.Result, error) {
	s.mu.Lock()

	res, err := estimator.Estimate(s.hand())
	if err != nil {
		s.mu.Unlock()
		return estimator.Result{}, err
	}

	s.result = &res
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pulsing = s.pulse > 0
	if s.pulsing {
		gen := s.gen
		s.timer = s.clock.AfterFunc(s.pulse, func() { s.endPulse(gen) }, "session", "pulse")
	}
	s.mu.Unlock()

	s.logger.Debug("Computed estimate",
		"total", res.PlayerTotal,
		"dealer", res.DealerUpcard,
		"hit", res.HitProbability,
		"stand", res.StandProbability)

	return res, nil
}

func (s *State) endPulse(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.pulsing = false
	s.timer = nil
	fn := s.onPulseEnd
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Result returns the latest result, or false before the first Compute
func (s *State) Result() (estimator.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return estimator.Result{}, false
	}
	return *s.result, true
}

// Pulsing reports whether the latest result is still highlighted
func (s *State) Pulsing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pulsing
}

// Reset clears the selectors, the result and any running pulse. The view is
// left alone.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = [3]card.Symbol{}
	s.result = nil
	s.pulsing = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Close stops any running pulse timer
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
