/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"github.com/mikeb26/chessclub-swiss/swiss"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: "alice", Name: "Alice Anders", Number: 1, Rating: 1800},
		{ID: "bob", Name: "Bob Baker", Number: 2, Rating: 1650},
		{ID: "carol", Name: "Carol Chen", Number: 3, Rating: 1500},
		{ID: "dave", Name: "Dave Diaz", Number: 4, Rating: 1400},
		{ID: "erin", Name: "Erin Evans", Number: 5},
	}
}

// sampleMatches covers two verified rounds and a third in progress.
func sampleMatches() []Match {
	return []Match{
		{Round: 1, Board: 1, Player1: "alice", Player2: "carol",
			Player1Color: swiss.White, Result: ResultPlayer1Wins, Verified: true},
		{Round: 1, Board: 2, Player1: "dave", Player2: "bob",
			Player1Color: swiss.White, Result: ResultPlayer2Wins, Verified: true},
		{Round: 1, Board: 0, Player1: "erin", Verified: true},

		{Round: 2, Board: 1, Player1: "bob", Player2: "alice",
			Player1Color: swiss.White, Result: ResultDraw, Verified: true},
		{Round: 2, Board: 2, Player1: "carol", Player2: "erin",
			Player1Color: swiss.White, Result: ResultPlayer1ForfeitWin,
			Verified: true},
		{Round: 2, Board: 0, Player1: "dave", Verified: true},

		{Round: 3, Board: 1, Player1: "alice", Player2: "erin",
			Player1Color: swiss.Black, Result: ResultPlayer1Wins},
		{Round: 3, Board: 2, Player1: "bob", Player2: "carol",
			Player1Color: swiss.White},
		{Round: 3, Board: 0, Player1: "dave", Verified: true},
	}
}
