package table

// Phase 牌桌阶段
type Phase int

const (
	PhaseBidding Phase = iota // 叫牌中
	PhasePlaying              // 打牌中
	PhaseClosed               // 已解散
)

var phaseNames = map[Phase]string{
	PhaseBidding: "bidding",
	PhasePlaying: "playing",
	PhaseClosed:  "closed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
