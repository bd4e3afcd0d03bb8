package engine

// Observer получает снимки мира. OnNewLevel приходит один раз при смене
// уровня (и при регистрации), до первого OnUpdate этого уровня.
type Observer interface {
	OnUpdate(s Snapshot)
	OnNewLevel(s Snapshot)
}

// LevelSupplier - внешний поставщик уровней.
// Сам вызывает World.NewLevel с готовым уровнем.
type LevelSupplier interface {
	NextLevel()
	Regenerate()
}
