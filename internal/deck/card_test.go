package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "AsKh",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
			},
		},
		{
			name:  "ten as zero or T",
			input: "0dTc",
			expected: []Card{
				{Suit: Diamonds, Rank: Ten},
				{Suit: Clubs, Rank: Ten},
			},
		},
		{
			name:  "spaces ignored",
			input: "7s 7h",
			expected: []Card{
				{Suit: Spades, Rank: Seven},
				{Suit: Hearts, Rank: Seven},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func TestCardCodes(t *testing.T) {
	tests := []struct {
		card Card
		code string
		str  string
	}{
		{NewCard(Ace, Spades), "AS", "A♠"},
		{NewCard(Ten, Hearts), "0H", "0♥"},
		{NewCard(Seven, Diamonds), "7D", "7♦"},
		{Card{Rank: King, Suit: Clubs, FaceDown: true}, "KC", "??"},
	}
	for _, tt := range tests {
		if got := tt.card.Code(); got != tt.code {
			t.Errorf("Code() = %q, want %q", got, tt.code)
		}
		if got := tt.card.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestParseWireValues(t *testing.T) {
	for _, r := range Ranks {
		got, err := ParseValue(r.Name())
		if err != nil || got != r {
			t.Errorf("ParseValue(%q) = %v, %v", r.Name(), got, err)
		}
	}
	for _, s := range Suits {
		got, err := ParseSuit(s.Name())
		if err != nil || got != s {
			t.Errorf("ParseSuit(%q) = %v, %v", s.Name(), got, err)
		}
	}
	if _, err := ParseValue("ELEVEN"); err == nil {
		t.Error("ParseValue should reject unknown values")
	}
	if _, err := ParseSuit("STARS"); err == nil {
		t.Error("ParseSuit should reject unknown suits")
	}
}

func TestCardEqualIgnoresVisibility(t *testing.T) {
	a := NewCard(Queen, Hearts)
	b := Card{Rank: Queen, Suit: Hearts, FaceDown: true}
	if !a.Equal(b) {
		t.Error("cards with same rank and suit should be equal")
	}
	if a.Equal(NewCard(Queen, Spades)) {
		t.Error("different suits should not be equal")
	}
	if b.Revealed().FaceDown {
		t.Error("Revealed should clear FaceDown")
	}
}

func TestRankPoints(t *testing.T) {
	expected := map[Rank]int{Two: 2, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10, Ace: 1}
	for r, want := range expected {
		if got := r.Points(); got != want {
			t.Errorf("%s.Points() = %d, want %d", r.Name(), got, want)
		}
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
