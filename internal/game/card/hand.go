package card

import (
	"fmt"
	"slices"
)

const (
	// HandCount 发牌的手数（座位数）
	HandCount = 4
	// HandSize 每手牌张数
	HandSize = DeckSize / HandCount
)

// Deal 轮流发牌，第 i 张牌发给第 i%4 手；要求恰好 52 张不重复的牌
func Deal(d Deck) ([HandCount][]Card, error) {
	var hands [HandCount][]Card
	if len(d) != DeckSize {
		return hands, fmt.Errorf("牌数错误: 需要 %d 张，实际 %d 张", DeckSize, len(d))
	}

	seen := make(map[Card]bool, DeckSize)
	for _, c := range d {
		if !c.Suit.Valid() || !c.Rank.Valid() {
			return hands, fmt.Errorf("无效的牌: %v", c)
		}
		if seen[c] {
			return hands, fmt.Errorf("重复的牌: %v", c)
		}
		seen[c] = true
	}

	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, c := range d {
		hands[i%HandCount] = append(hands[i%HandCount], c)
	}
	for i := range hands {
		SortHand(hands[i])
	}
	return hands, nil
}

// SortHand 按花色分组、组内点数从大到小排序
func SortHand(hand []Card) {
	slices.SortFunc(hand, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(b.Suit) - int(a.Suit)
		}
		return int(b.Rank) - int(a.Rank)
	})
}

// HasSuit 判断手牌中是否有指定花色
func HasSuit(hand []Card, s Suit) bool {
	return slices.ContainsFunc(hand, func(c Card) bool { return c.Suit == s })
}

// IndexOf 返回牌在手牌中的下标，不存在返回 -1
func IndexOf(hand []Card, target Card) int {
	return slices.Index(hand, target)
}

// RemoveAt 返回去掉第 idx 张后的新手牌
func RemoveAt(hand []Card, idx int) []Card {
	result := make([]Card, 0, len(hand)-1)
	result = append(result, hand[:idx]...)
	return append(result, hand[idx+1:]...)
}
