package systems

// 音效ID（对应 game.yaml 的 sounds 表）
const (
	SoundSuccess = "success"
	SoundHoe     = "hoe"
	SoundAxe     = "axe"
	SoundWater   = "water"
	SoundPlant   = "plant"
	SoundMusic   = "music"
)
