package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/mybridge/internal/game/card"
)

// Strain 叫牌花色，比花色多一个无将
type Strain int

const (
	StrainClubs    Strain = Strain(card.Clubs)
	StrainDiamonds Strain = Strain(card.Diamonds)
	StrainHearts   Strain = Strain(card.Hearts)
	StrainSpades   Strain = Strain(card.Spades)
	NoTrump        Strain = 4
)

const (
	MinLevel = 1
	MaxLevel = 7
)

// strainNames 叫品名称映射表
var strainNames = map[Strain]string{
	StrainClubs:    "♣",
	StrainDiamonds: "♦",
	StrainHearts:   "♥",
	StrainSpades:   "♠",
	NoTrump:        "NT",
}

func (s Strain) String() string {
	if name, ok := strainNames[s]; ok {
		return name
	}
	return "无效"
}

// Valid 判断叫品是否合法
func (s Strain) Valid() bool {
	return s >= StrainClubs && s <= NoTrump
}

// Suit 返回对应的将牌花色；无将返回 false
func (s Strain) Suit() (card.Suit, bool) {
	if s >= StrainClubs && s <= StrainSpades {
		return card.Suit(s), true
	}
	return 0, false
}

// StrainOf 花色转叫品
func StrainOf(s card.Suit) Strain {
	return Strain(s)
}

// Bid 一个叫牌：阶数 1..7 加叫品
type Bid struct {
	Level  int    `json:"level"`
	Strain Strain `json:"strain"`
}

func (b Bid) String() string {
	return strconv.Itoa(b.Level) + b.Strain.String()
}

// Valid 判断阶数与叫品是否在范围内
func (b Bid) Valid() bool {
	return b.Level >= MinLevel && b.Level <= MaxLevel && b.Strain.Valid()
}

// Higher 判断 b 是否严格高于 other：阶数更高，或同阶叫品更高
func (b Bid) Higher(other Bid) bool {
	if b.Level != other.Level {
		return b.Level > other.Level
	}
	return b.Strain > other.Strain
}

// ParseBid 解析叫牌，如 "3NT"、"2H"、"1♠"
func ParseBid(input string) (Bid, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return Bid{}, fmt.Errorf("空的叫牌")
	}
	level, err := strconv.Atoi(s[:1])
	if err != nil {
		return Bid{}, fmt.Errorf("无法识别的阶数: %q", input)
	}

	var strain Strain
	switch rest := s[1:]; rest {
	case "NT", "N":
		strain = NoTrump
	default:
		runes := []rune(rest)
		if len(runes) != 1 {
			return Bid{}, fmt.Errorf("无法识别的叫品: %q", input)
		}
		suit, err := card.SuitFromChar(runes[0])
		if err != nil {
			return Bid{}, err
		}
		strain = StrainOf(suit)
	}

	b := Bid{Level: level, Strain: strain}
	if !b.Valid() {
		return Bid{}, fmt.Errorf("叫牌超出范围: %q", input)
	}
	return b, nil
}

// Call 叫牌记录中的一项：某座位的叫牌或 Pass
type Call struct {
	Seat Seat `json:"seat"`
	Pass bool `json:"pass"`
	Bid  Bid  `json:"bid,omitzero"`
}

func (c Call) String() string {
	if c.Pass {
		return c.Seat.String() + ": Pass"
	}
	return c.Seat.String() + ": " + c.Bid.String()
}

// Contract 定约：最终被接受的叫牌及其叫出者
type Contract struct {
	Bid      Bid  `json:"bid"`
	Declarer Seat `json:"declarer"`
}

// Trump 定约决定的将牌
func (c Contract) Trump() Strain {
	return c.Bid.Strain
}

func (c Contract) String() string {
	return fmt.Sprintf("%s by %s", c.Bid, c.Declarer)
}
