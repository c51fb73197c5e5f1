package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"沉稳的", "大胆的", "机智的", "冷静的", "神秘的",
		"果断的", "谨慎的", "潇洒的", "淡定的", "狡黠的",
	}

	nouns = []string{
		"庄家", "首攻手", "明手", "将牌", "无将",
		"黑桃A", "红心K", "方块Q", "梅花J", "大满贯",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
