// Package game implements the blackjack round engine.
//
// An Engine seats a fixed set of players against the house and plays one round
// per call to PlayRound:
//
//	supply := deck.NewSupply(6, true)
//	players := []*game.Player{game.NewPlayer("Alice", 1000, policy)}
//	e, err := game.NewEngine(game.DefaultRules(), supply, players)
//	for {
//	    r := e.PlayRound()
//	    if r.Outcome != game.Completed {
//	        break
//	    }
//	}
//
// # Rounds
//
// Each round collects the ante from every player who can afford it, deals two
// cards to every hand and to the dealer (the second dealer card face down), plays
// every hand through a Resolver, plays the dealer (hit on 16 or less and on soft
// 17) and settles each hand with Settle.
//
// # Policies
//
// Decisions come from a Policy bound to each Player. Policies are given an
// immutable View per decision and never see the dealer's hole card. Illegal or
// unrecognised requests are logged and absorbed; they never stop a round.
package game
