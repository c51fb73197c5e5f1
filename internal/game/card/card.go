package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Suit 定义花色，按桥牌顺序从低到高排列
type Suit int

// Rank 定义点数，2..14（J=11, Q=12, K=13, A=14）
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Clubs    Suit = iota // 梅花
	Diamonds             // 方块
	Hearts               // 红心
	Spades               // 黑桃
)

// Suits 全部四种花色，按从低到高顺序
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}

// suitLetters 花色字母，用于输入解析
var suitLetters = map[Suit]string{
	Clubs:    "C",
	Diamonds: "D",
	Hearts:   "H",
	Spades:   "S",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Letter 返回花色的英文字母
func (s Suit) Letter() string {
	return suitLetters[s]
}

// Valid 判断是否为四种花色之一
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Color 返回花色颜色
func (s Suit) Color() CardColor {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Valid 判断点数是否在 2..A 范围内
func (r Rank) Valid() bool {
	return r >= Rank2 && r <= RankA
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'2': Rank2,
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
	'A': RankA,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %c", char)
}

// charToSuit 花色字符（字母或符号）到 Suit
var charToSuit = map[rune]Suit{
	'C': Clubs,
	'D': Diamonds,
	'H': Hearts,
	'S': Spades,
	'♣': Clubs,
	'♦': Diamonds,
	'♥': Hearts,
	'♠': Spades,
}

func SuitFromChar(char rune) (Suit, error) {
	if suit, ok := charToSuit[char]; ok {
		return suit, nil
	}
	return -1, fmt.Errorf("无法识别的花色: %c", char)
}

// Card 定义一张牌，按 (Suit, Rank) 判等
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code 返回 ASCII 牌码，如 "AS"、"10H"
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// ParseCard 解析牌码，点数在前花色在后，如 "AS"、"10h"、"Q♥"
func ParseCard(input string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "10", "T")
	runes := []rune(s)
	if len(runes) != 2 {
		return Card{}, fmt.Errorf("无效的牌码: %q", input)
	}
	rank, err := RankFromChar(runes[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := SuitFromChar(runes[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Deck 定义一副牌
type Deck []Card

// DeckSize 一副牌的张数
const DeckSize = 52

// NewDeck 按花色从低到高、点数从 2 到 A 生成 52 张牌，结果固定
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for r := Rank2; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 返回洗好的新牌堆，不修改原牌堆；固定种子下结果可复现
func Shuffle(d Deck, rng *rand.Rand) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
