package config

// 布局配置常量

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 540

	// ArenaCenterX 竞技场中心X坐标（玩家所在位置）
	ArenaCenterX = GameWindowWidth / 2.0

	// ArenaCenterY 竞技场中心Y坐标
	ArenaCenterY = GameWindowHeight / 2.0

	// EnemySpawnRadius 敌人生成半径，敌人从圆周上出现并向中心移动
	EnemySpawnRadius = 300.0

	// EnemyRadius 敌人碰撞/点击半径
	EnemyRadius = 14.0

	// PlayerRadius 玩家碰撞半径，敌人进入即判定玩家死亡
	PlayerRadius = 18.0
)
