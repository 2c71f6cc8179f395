package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// CardSupply is where the engine takes cards from. *deck.Supply implements it.
type CardSupply interface {
	// Draw returns ok=false once the supply is exhausted.
	Draw(faceDown bool) (deck.Card, bool)
	Remaining() int
}

// Outcome says how a call to PlayRound ended
type Outcome int

const (
	// Completed rounds were dealt, played and settled.
	Completed Outcome = iota
	// GameOver means no player could pay the ante; nothing was dealt.
	GameOver
	// Voided rounds ran out of cards part way. Every balance was restored to its
	// value before the ante and the game cannot continue on this supply.
	Voided
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case GameOver:
		return "game over"
	case Voided:
		return "voided"
	default:
		return "unknown"
	}
}

// HandResult records how one hand was settled
type HandResult struct {
	Player      string
	Index       int
	Cards       []deck.Card
	Score       int
	DoubledDown bool
	Result      Result
	Payout      int
}

// RoundResult summarises one round
type RoundResult struct {
	Round       int
	Outcome     Outcome
	Order       []string // players dealt in, in play order
	Excluded    []string // players who could not pay the ante
	Dealer      []deck.Card
	DealerScore int
	Hands       []HandResult
	Balances    map[string]int
}

// Engine runs rounds of blackjack for a fixed set of players against the house.
// It owns the card supply and is the only writer of player balances apart from
// the split and double down fees taken by its Resolver.
type Engine struct {
	rules    Rules
	supply   CardSupply
	players  []*Player
	dealer   *Hand
	display  Display
	rng      *rand.Rand
	logger   *log.Logger
	resolver *Resolver

	round  int
	active []*Player
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithDisplay sets the presentation boundary the engine renders to.
func WithDisplay(d Display) EngineOption {
	return func(e *Engine) { e.display = d }
}

// WithRNG sets the source used to shuffle play order.
func WithRNG(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an engine for players drawing from supply
func NewEngine(rules Rules, supply CardSupply, players []*Player, opts ...EngineOption) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if supply == nil {
		return nil, errors.New("card supply is required")
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == nil || p.Policy == nil {
			return nil, errors.New("every player needs a policy")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}

	e := &Engine{
		rules:   rules,
		supply:  supply,
		players: players,
		dealer:  NewHand(),
		display: NopDisplay{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(randutil.Resolve(0))
	}
	e.logger = e.logger.WithPrefix("engine")
	e.resolver = newResolver(rules, e, e.logger)
	return e, nil
}

// PlayRound runs ante collection, the deal, every player's hands, the dealer's
// hand and settlement. It never fails: a table nobody can afford returns
// GameOver and a supply that runs dry returns Voided.
func (e *Engine) PlayRound() *RoundResult {
	e.rng.Shuffle(len(e.players), func(i, j int) {
		e.players[i], e.players[j] = e.players[j], e.players[i]
	})

	var eligible []*Player
	for _, p := range e.players {
		if p.CanAfford(e.rules.Ante) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		e.logger.Info("No player can pay the ante", "ante", e.rules.Ante, "rounds", e.round)
		return &RoundResult{Round: e.round, Outcome: GameOver, Balances: e.balances()}
	}

	e.round++
	start := e.balances()
	result := &RoundResult{Round: e.round, Outcome: Completed}

	for _, p := range e.players {
		if !p.CanAfford(e.rules.Ante) {
			p.Hands = nil
			result.Excluded = append(result.Excluded, p.Name)
			continue
		}
		_ = p.Pay(e.rules.Ante)
		p.JoinTable()
		result.Order = append(result.Order, p.Name)
	}
	e.active = eligible
	e.dealer = NewHand()

	e.logger.Debug("Starting round", "round", e.round, "players", len(e.active), "remaining", e.supply.Remaining())

	if err := e.dealInitial(); err != nil {
		return e.void(result, start, err)
	}

	for _, p := range e.active {
		// Splits append hands, so the bound is re-read every iteration.
		for i := 0; i < len(p.Hands); i++ {
			if err := e.resolver.PlayHand(p, i); err != nil {
				return e.void(result, start, err)
			}
		}
	}

	if err := e.playDealer(); err != nil {
		return e.void(result, start, err)
	}

	e.settle(result)
	e.finish(result)
	return result
}

func (e *Engine) dealInitial() error {
	for pass := 0; pass < 2; pass++ {
		for _, p := range e.active {
			for _, h := range p.Hands {
				if err := e.deal(h); err != nil {
					return err
				}
			}
		}
		if pass == 0 {
			if err := e.deal(e.dealer); err != nil {
				return err
			}
			continue
		}
		// The hole card stays hidden, and unannounced, until the dealer plays.
		hole, ok := e.supply.Draw(true)
		if !ok {
			return ErrSupplyExhausted
		}
		e.dealer.Add(hole)
	}
	return nil
}

func (e *Engine) playDealer() error {
	for i, c := range e.dealer.Cards {
		if c.FaceDown {
			e.dealer.Cards[i] = c.Revealed()
			e.notify(e.dealer.Cards[i])
		}
	}
	e.display.ShowTable(e.tableView("", -1))

	for DealerShouldHit(e.dealer) {
		if err := e.deal(e.dealer); err != nil {
			return err
		}
		e.display.ShowTable(e.tableView("", -1))
	}
	e.logger.Debug("Dealer stands", "cards", e.dealer.String(), "score", e.dealer.Score())
	return nil
}

func (e *Engine) settle(result *RoundResult) {
	result.Dealer = append([]deck.Card(nil), e.dealer.Cards...)
	result.DealerScore = e.dealer.Score()

	for _, p := range e.active {
		for i, h := range p.Hands {
			res, payout := Settle(h, e.dealer, e.rules.Ante)
			p.Coins += payout
			result.Hands = append(result.Hands, HandResult{
				Player:      p.Name,
				Index:       i,
				Cards:       append([]deck.Card(nil), h.Cards...),
				Score:       h.Score(),
				DoubledDown: h.DoubledDown,
				Result:      res,
				Payout:      payout,
			})
			e.logger.Debug("Settled hand",
				"player", p.Name,
				"hand", i,
				"score", h.Score(),
				"dealer", result.DealerScore,
				"result", res,
				"payout", payout)
		}
	}
}

func (e *Engine) void(result *RoundResult, start map[string]int, cause error) *RoundResult {
	e.logger.Warn("Voiding round", "round", e.round, "error", cause)
	for _, p := range e.players {
		p.Coins = start[p.Name]
	}
	result.Outcome = Voided
	result.Dealer = append([]deck.Card(nil), e.dealer.Cards...)
	result.Hands = nil
	e.finish(result)
	return result
}

func (e *Engine) finish(result *RoundResult) {
	for _, p := range e.players {
		p.Policy.OnRoundEnd()
		p.Hands = nil
	}
	e.active = nil
	result.Balances = e.balances()
}

func (e *Engine) balances() map[string]int {
	b := make(map[string]int, len(e.players))
	for _, p := range e.players {
		b[p.Name] = p.Coins
	}
	return b
}

func (e *Engine) notify(c deck.Card) {
	for _, p := range e.players {
		p.Policy.OnCardDrawn(c)
	}
}

// deal draws a face-up card into h and announces it to every policy.
func (e *Engine) deal(h *Hand) error {
	c, ok := e.supply.Draw(false)
	if !ok {
		return ErrSupplyExhausted
	}
	h.Add(c)
	e.notify(c)
	return nil
}

func (e *Engine) view(p *Player, idx int, legal []Action) View {
	v := View{
		Player:    p.Name,
		Coins:     p.Coins,
		Ante:      e.rules.Ante,
		Hand:      viewOf(p.Name, idx, p.Hands[idx]),
		Legal:     append([]Action(nil), legal...),
		Dealer:    maskCards(e.dealer.Cards),
		Remaining: e.supply.Remaining(),
	}
	if len(v.Dealer) > 0 {
		v.DealerUp = v.Dealer[0]
	}
	for _, q := range e.active {
		for j, h := range q.Hands {
			if q == p && j == idx {
				continue
			}
			v.Others = append(v.Others, viewOf(q.Name, j, h))
		}
	}
	return v
}

func (e *Engine) show(p *Player, idx int) {
	e.display.ShowTable(e.tableView(p.Name, idx))
}

func (e *Engine) tableView(activePlayer string, activeHand int) TableView {
	tv := TableView{
		Round:        e.round,
		Dealer:       maskCards(e.dealer.Cards),
		DealerScore:  visibleHand(e.dealer).Score(),
		ActivePlayer: activePlayer,
		ActiveHand:   activeHand,
		Remaining:    e.supply.Remaining(),
	}
	for _, p := range e.players {
		pv := PlayerView{Name: p.Name, Coins: p.Coins, InPlay: len(p.Hands) > 0}
		for i, h := range p.Hands {
			pv.Hands = append(pv.Hands, viewOf(p.Name, i, h))
		}
		tv.Players = append(tv.Players, pv)
	}
	return tv
}

// Players returns the seated players in the current play order
func (e *Engine) Players() []*Player {
	return e.players
}

// Dealer returns the house hand of the current or last round
func (e *Engine) Dealer() *Hand {
	return e.dealer
}

// Round returns the number of rounds dealt so far
func (e *Engine) Round() int {
	return e.round
}

// Rules returns the table stakes
func (e *Engine) Rules() Rules {
	return e.rules
}

// Remaining returns the number of undealt cards
func (e *Engine) Remaining() int {
	return e.supply.Remaining()
}
