package rule

import (
	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/card"
)

// CheckPlay 检查手牌中第 idx 张能否出到当前墩。
//
// 默认规则：手里有将牌时，出的牌必须是将牌或首攻花色；
// 手里没有将牌时可以出任意牌，即使持有首攻花色。
// strict 为 true 时：有首攻花色必须跟；没有首攻花色但有将牌必须出将牌。
func CheckPlay(hand []card.Card, idx int, t *Trick, strict bool) error {
	if idx < 0 || idx >= len(hand) {
		return apperrors.ErrCardNotInHand
	}
	led, ok := t.LedSuit()
	if !ok {
		return nil // 首攻随意
	}

	c := hand[idx]
	trumpSuit, hasTrump := t.Trump.Suit()
	holdsTrump := hasTrump && card.HasSuit(hand, trumpSuit)

	if strict {
		if card.HasSuit(hand, led) {
			if c.Suit != led {
				return apperrors.ErrRevokeViolation
			}
			return nil
		}
		if holdsTrump && c.Suit != trumpSuit {
			return apperrors.ErrRevokeViolation
		}
		return nil
	}

	if holdsTrump && c.Suit != trumpSuit && c.Suit != led {
		return apperrors.ErrRevokeViolation
	}
	return nil
}

// LegalPlays 返回手牌中所有可出牌的下标
func LegalPlays(hand []card.Card, t *Trick, strict bool) []int {
	legal := make([]int, 0, len(hand))
	for i := range hand {
		if CheckPlay(hand, i, t, strict) == nil {
			legal = append(legal, i)
		}
	}
	return legal
}
