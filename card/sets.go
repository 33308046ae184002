package card

// Pair is a rank/suit combination without a face
type Pair struct {
	Rank Rank
	Suit Suit
}

// StandardPairs returns the 52 rank/suit pairs, rank outer loop and suit inner loop
func StandardPairs() []Pair {
	pairs := make([]Pair, 0, 52)
	for _, r := range Ranks {
		for _, s := range Suits {
			pairs = append(pairs, Pair{Rank: r, Suit: s})
		}
	}
	return pairs
}

// JokerPairs returns the 52 standard pairs followed by two jokers
func JokerPairs() []Pair {
	return append(StandardPairs(), Pair{Rank: Joker}, Pair{Rank: Joker})
}

// Standard52 builds the canonical 52-card set with every card facing face
func Standard52(face Face) []Card {
	return fromPairs(StandardPairs(), face)
}

// Standard54 builds Standard52 followed by two jokers
func Standard54(face Face) []Card {
	return fromPairs(JokerPairs(), face)
}

func fromPairs(pairs []Pair, face Face) []Card {
	cards := make([]Card, len(pairs))
	for i, p := range pairs {
		cards[i] = MustNew(p.Rank, p.Suit, face)
	}
	return cards
}
