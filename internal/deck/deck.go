package deck

import (
	"context"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/randutil"
)

const (
	// CardsPerDeck is the size of one standard deck.
	CardsPerDeck = 52
	// MaxRemoteDecks is the largest shoe the card-supply service will open.
	// Bigger local shoes ask the service for this many and fall back to the
	// local pile once the remote deck is empty.
	MaxRemoteDecks = 8
	// cardsPerHand is a generous allowance for the cards one hand takes in a
	// round, hits and splits included. It is only used to size shoes.
	cardsPerHand = 8
)

// DecksFor returns how many decks a shoe needs so that rounds rounds for seats
// players and the dealer will not run it dry.
func DecksFor(rounds, seats int) int {
	if rounds < 1 || seats < 1 {
		return 1
	}
	cards := rounds * (seats + 1) * cardsPerHand
	return (cards + CardsPerDeck - 1) / CardsPerDeck
}

// Session describes a deck opened on a remote card-supply service.
type Session struct {
	ID        string
	Remaining int
	Shuffled  bool
}

// Remote is a card-supply service that can hold a shuffled shoe on our behalf.
// Every method may fail; the Supply treats any failure as "use the local pile".
type Remote interface {
	NewDeck(ctx context.Context, decks int, shuffle bool) (Session, error)
	// Draw returns ok=false when the service reports that it has no cards left.
	Draw(ctx context.Context, id string) (card Card, ok bool, err error)
	Shuffle(ctx context.Context, id string) error
}

// Supply is the shoe cards are dealt from. The local pile is authoritative: it
// always holds exactly the undealt cards, and a remote session, when present, only
// decides which of those cards comes next.
type Supply struct {
	pile     []Card
	decks    int
	shuffled bool

	remote  Remote
	session string

	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a Supply
type Option func(*Supply)

// WithRNG sets the random source used for local shuffles.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Supply) { s.rng = rng }
}

// WithRemote backs the supply with a remote card-supply service.
func WithRemote(remote Remote) Option {
	return func(s *Supply) { s.remote = remote }
}

// WithLogger sets the logger for remote fallbacks.
func WithLogger(logger *log.Logger) Option {
	return func(s *Supply) { s.logger = logger.WithPrefix("supply") }
}

// NewSupply builds a shoe of decks*52 cards. When a remote is configured a
// session is opened immediately; if that fails the supply stays local-only.
func NewSupply(decks int, shuffle bool, opts ...Option) *Supply {
	if decks < 1 {
		decks = 1
	}
	s := &Supply{
		pile:     make([]Card, 0, decks*CardsPerDeck),
		decks:    decks,
		shuffled: shuffle,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.New(randutil.Resolve(0))
	}

	for d := 0; d < decks; d++ {
		for _, rank := range Ranks {
			for _, suit := range Suits {
				s.pile = append(s.pile, NewCard(rank, suit))
			}
		}
	}
	if shuffle {
		s.shuffleLocal()
	}

	if s.remote != nil {
		session, err := s.remote.NewDeck(context.Background(), min(decks, MaxRemoteDecks), shuffle)
		if err != nil {
			s.logger.Warn("Remote deck unavailable, using local pile", "error", err)
		} else {
			s.session = session.ID
			s.shuffled = session.Shuffled
			s.logger.Debug("Opened remote deck", "id", session.ID, "remaining", session.Remaining)
		}
	}

	return s
}

// Draw removes the next card from the supply and returns it with the requested
// visibility. ok is false only when the supply is exhausted.
func (s *Supply) Draw(faceDown bool) (card Card, ok bool) {
	card, ok = s.drawRemote()
	if !ok {
		if len(s.pile) == 0 {
			return Card{}, false
		}
		card = s.pile[len(s.pile)-1]
		s.pile = s.pile[:len(s.pile)-1]
	}
	card.FaceDown = faceDown
	return card, true
}

func (s *Supply) drawRemote() (Card, bool) {
	if s.session == "" {
		return Card{}, false
	}

	card, ok, err := s.remote.Draw(context.Background(), s.session)
	if err != nil {
		s.logger.Warn("Remote draw failed, dropping session", "id", s.session, "error", err)
		s.session = ""
		return Card{}, false
	}
	if !ok {
		s.logger.Debug("Remote deck empty, dropping session", "id", s.session)
		s.session = ""
		return Card{}, false
	}

	idx := s.indexOf(card)
	if idx < 0 {
		s.logger.Warn("Remote card not in local pile", "card", card.Code())
		return Card{}, false
	}
	s.pile = append(s.pile[:idx], s.pile[idx+1:]...)
	return card, true
}

func (s *Supply) indexOf(card Card) int {
	for i := len(s.pile) - 1; i >= 0; i-- {
		if s.pile[i].Equal(card) {
			return i
		}
	}
	return -1
}

// Shuffle reorders the undealt cards. A remote shuffle is requested as well but
// its outcome is ignored.
func (s *Supply) Shuffle() {
	if s.session != "" {
		if err := s.remote.Shuffle(context.Background(), s.session); err != nil {
			s.logger.Debug("Remote shuffle failed", "id", s.session, "error", err)
		}
	}
	s.shuffleLocal()
	s.shuffled = true
}

func (s *Supply) shuffleLocal() {
	s.rng.Shuffle(len(s.pile), func(i, j int) {
		s.pile[i], s.pile[j] = s.pile[j], s.pile[i]
	})
}

// Remaining returns the number of undealt cards
func (s *Supply) Remaining() int {
	return len(s.pile)
}

// IsEmpty returns true if no cards are left
func (s *Supply) IsEmpty() bool {
	return len(s.pile) == 0
}

// Decks returns how many decks the shoe was built from.
func (s *Supply) Decks() int {
	return s.decks
}

// IsShuffled reports whether the shoe has been shuffled.
func (s *Supply) IsShuffled() bool {
	return s.shuffled
}

// HasRemoteSession reports whether draws are currently routed via the remote.
func (s *Supply) HasRemoteSession() bool {
	return s.session != ""
}
