package rule

import "fmt"

// SeatCount 牌桌座位数
const SeatCount = 4

// Seat 座位号 0..3，顺时针排列
type Seat int

// Team 搭档方：0、2 号座位为 A 方，1、3 号座位为 B 方
type Team int

const (
	TeamA Team = iota
	TeamB
)

// Teams 全部两方
var Teams = [...]Team{TeamA, TeamB}

var seatNames = [SeatCount]string{"北", "东", "南", "西"}

func (s Seat) String() string {
	if s.Valid() {
		return seatNames[s]
	}
	return fmt.Sprintf("Seat(%d)", int(s))
}

// Valid 判断座位号是否合法
func (s Seat) Valid() bool {
	return s >= 0 && s < SeatCount
}

// Team 返回座位所属的搭档方，整局不变
func (s Seat) Team() Team {
	return Team(s % 2)
}

func (t Team) String() string {
	if t == TeamA {
		return "南北"
	}
	return "东西"
}

// Other 返回对方
func (t Team) Other() Team {
	return 1 - t
}

// Order 出牌顺序，是四个座位的一个排列
type Order [SeatCount]Seat

// DefaultOrder 顺时针 0→1→2→3
var DefaultOrder = Order{0, 1, 2, 3}

// Valid 判断是否为合法排列
func (o Order) Valid() bool {
	var seen [SeatCount]bool
	for _, s := range o {
		if !s.Valid() || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// IndexOf 返回座位在顺序中的位置
func (o Order) IndexOf(s Seat) int {
	for i, v := range o {
		if v == s {
			return i
		}
	}
	return -1
}

// At 按偏移取座位，偏移可以超过 SeatCount
func (o Order) At(i int) Seat {
	return o[((i%SeatCount)+SeatCount)%SeatCount]
}

// Next 返回顺序中的下一个座位
func (o Order) Next(s Seat) Seat {
	return o.At(o.IndexOf(s) + 1)
}
