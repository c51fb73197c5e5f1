package table

import (
	"math/rand/v2"

	"github.com/palemoky/mybridge/internal/game/card"
)

// drawTrump 从四种花色中等概率抽取将牌，排除上一次的将牌
func drawTrump(rng *rand.Rand, prev *card.Suit) card.Suit {
	candidates := make([]card.Suit, 0, len(card.Suits))
	for _, s := range card.Suits {
		if prev != nil && s == *prev {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates[rng.IntN(len(candidates))]
}
