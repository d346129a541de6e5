package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// ArenaConfig 竞技场配置
// 定义波次列表、波次间隔、冲击波默认参数与 HUD 文本
type ArenaConfig struct {
	Name              string          `yaml:"name"`              // 竞技场名称
	NextWaveDelay     float64         `yaml:"nextWaveDelay"`     // 波次被击败后到下一波的间隔（秒）
	ReturnToMenuDelay float64         `yaml:"returnToMenuDelay"` // 全部波次击败后返回菜单的延迟（秒）
	Shockwave         ShockwaveConfig `yaml:"shockwave"`         // 冲击波默认参数
	HUD               HUDConfig       `yaml:"hud"`               // HUD 文本配置
	Waves             []WaveConfig    `yaml:"waves"`             // 波次列表，按顺序出场
}

// ShockwaveConfig 冲击波发射参数
type ShockwaveConfig struct {
	Amplitude   float64 `yaml:"amplitude"`   // 振幅
	Speed       float64 `yaml:"speed"`       // 扩散速度
	Duration    float64 `yaml:"duration"`    // 持续时间（秒）
	PlayOnStart bool    `yaml:"playOnStart"` // 进入场景时在玩家位置触发一次
}

// HUDConfig HUD 文本配置
type HUDConfig struct {
	ScorePrefix string   `yaml:"scorePrefix"` // 分数前缀
	LerpSpeed   float64  `yaml:"lerpSpeed"`   // 计数器插值系数（每 0.05 秒一步），0~1
	Complements []string `yaml:"complements"` // 波次击败时轮换显示的称赞语
}

// WaveConfig 单个波次（敌群）配置
type WaveConfig struct {
	Enemies       int     `yaml:"enemies"`       // 敌人数量
	SpawnInterval float64 `yaml:"spawnInterval"` // 相邻两个敌人的生成间隔（秒）
	Health        int     `yaml:"health"`        // 每个敌人的生命值
	Speed         float64 `yaml:"speed"`         // 移动速度（像素/秒）
	ScoreValue    int     `yaml:"scoreValue"`    // 击败一个敌人获得的分数
}

// DefaultArenaConfig 返回内置的默认配置
func DefaultArenaConfig() *ArenaConfig {
	cfg, err := ParseArenaConfig(defaultArenaYAML)
	if err != nil {
		// 内置配置由测试保证合法
		panic(fmt.Sprintf("invalid embedded arena config: %v", err))
	}
	return cfg
}

// LoadArenaConfig 从 YAML 文件加载竞技场配置
func LoadArenaConfig(filePath string) (*ArenaConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config file %s: %w", filePath, err)
	}

	cfg, err := ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load arena config from %s: %w", filePath, err)
	}
	return cfg, nil
}

// ParseArenaConfig 解析 YAML 数据，补齐默认值并校验
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	var cfg ArenaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse arena config YAML: %w", err)
	}

	applyArenaDefaults(&cfg)

	if err := validateArenaConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	return &cfg, nil
}

// applyArenaDefaults 为缺省字段填充默认值
func applyArenaDefaults(cfg *ArenaConfig) {
	if cfg.Name == "" {
		cfg.Name = "Wave Arena"
	}
	if cfg.Shockwave.Amplitude == 0 {
		cfg.Shockwave.Amplitude = 1.0
	}
	if cfg.Shockwave.Speed == 0 {
		cfg.Shockwave.Speed = 1.0
	}
	if cfg.Shockwave.Duration == 0 {
		cfg.Shockwave.Duration = 1.0
	}
	if cfg.HUD.LerpSpeed == 0 {
		cfg.HUD.LerpSpeed = 0.25
	}
	if len(cfg.HUD.Complements) == 0 {
		cfg.HUD.Complements = []string{"Nice!"}
	}

	for i := range cfg.Waves {
		w := &cfg.Waves[i]
		if w.Health == 0 {
			w.Health = 1
		}
		if w.ScoreValue == 0 {
			w.ScoreValue = 1
		}
	}
}

// validateArenaConfig 验证配置的有效性
func validateArenaConfig(cfg *ArenaConfig) error {
	if cfg.NextWaveDelay < 0 {
		return fmt.Errorf("nextWaveDelay must be >= 0, got %v", cfg.NextWaveDelay)
	}
	if cfg.ReturnToMenuDelay < 0 {
		return fmt.Errorf("returnToMenuDelay must be >= 0, got %v", cfg.ReturnToMenuDelay)
	}
	if cfg.Shockwave.Duration < 0 {
		return fmt.Errorf("shockwave.duration must be >= 0, got %v", cfg.Shockwave.Duration)
	}
	if cfg.HUD.LerpSpeed < 0 || cfg.HUD.LerpSpeed > 1 {
		return fmt.Errorf("hud.lerpSpeed must be between 0 and 1, got %v", cfg.HUD.LerpSpeed)
	}

	for i, w := range cfg.Waves {
		if w.Enemies < 0 {
			return fmt.Errorf("wave %d: enemies must be >= 0, got %d", i+1, w.Enemies)
		}
		if w.SpawnInterval < 0 {
			return fmt.Errorf("wave %d: spawnInterval must be >= 0, got %v", i+1, w.SpawnInterval)
		}
		if w.Health < 0 {
			return fmt.Errorf("wave %d: health must be > 0, got %d", i+1, w.Health)
		}
		if w.Speed < 0 {
			return fmt.Errorf("wave %d: speed must be >= 0, got %v", i+1, w.Speed)
		}
	}
	return nil
}
