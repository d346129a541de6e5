package systems

import (
	_ "embed"
	"fmt"

	"github.com/decker502/wavearena/pkg/effects"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/shockwave.kage
var shockwaveShaderSource []byte

// ShockwaveRenderSystem 冲击波渲染系统
//
// 每帧从 ShockwaveEffect 拉取参数表、从效果注册表拉取游戏时间，
// 把场景离屏图像经由冲击波着色器绘制到屏幕。
// 着色器按开始/结束时间自行判断槽位是否有效，未激活槽位（-1）不产生位移。
type ShockwaveRenderSystem struct {
	effect   *effects.ShockwaveEffect
	registry *effects.Registry
	shader   *ebiten.Shader

	// Enabled 为 false 时直接绘制场景，不经过着色器
	Enabled bool
	// Intensity 振幅倍率（来自显示设置）
	Intensity float64
}

// NewShockwaveRenderSystem 创建冲击波渲染系统并编译着色器
func NewShockwaveRenderSystem(effect *effects.ShockwaveEffect, registry *effects.Registry) (*ShockwaveRenderSystem, error) {
	shader, err := ebiten.NewShader(shockwaveShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shockwave shader: %w", err)
	}

	return &ShockwaveRenderSystem{
		effect:    effect,
		registry:  registry,
		shader:    shader,
		Enabled:   true,
		Intensity: 1.0,
	}, nil
}

// Draw 把 scene 经过冲击波着色器绘制到 screen
// scene 必须与 screen 同尺寸
func (s *ShockwaveRenderSystem) Draw(screen, scene *ebiten.Image) {
	if !s.Enabled || s.shader == nil {
		screen.DrawImage(scene, nil)
		return
	}

	bounds := scene.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = scene
	op.Uniforms = BuildShockwaveUniforms(s.effect.Buffer().Params(), s.registry.GameTime(), s.Intensity)
	screen.DrawRectShader(bounds.Dx(), bounds.Dy(), s.shader, op)
}

// BuildShockwaveUniforms 把参数表展开为着色器 uniform
// 位置只取 X/Y，Z 分量在 2D 渲染中不使用
func BuildShockwaveUniforms(params effects.ShockwaveParams, gameTime, intensity float64) map[string]any {
	positions := make([]float32, 0, effects.MaxShockwaves*2)
	amplitudes := make([]float32, effects.MaxShockwaves)
	speeds := make([]float32, effects.MaxShockwaves)
	startTimes := make([]float32, effects.MaxShockwaves)
	endTimes := make([]float32, effects.MaxShockwaves)

	for i := 0; i < effects.MaxShockwaves; i++ {
		positions = append(positions, float32(params.Positions[i].X), float32(params.Positions[i].Y))
		amplitudes[i] = float32(params.Amplitudes[i])
		speeds[i] = float32(params.Speeds[i])
		startTimes[i] = float32(params.StartTimes[i])
		endTimes[i] = float32(params.EndTimes[i])
	}

	return map[string]any{
		"GameTime":   float32(gameTime),
		"Intensity":  float32(intensity),
		"Positions":  positions,
		"Amplitudes": amplitudes,
		"Speeds":     speeds,
		"StartTimes": startTimes,
		"EndTimes":   endTimes,
	}
}
