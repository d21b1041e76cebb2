package types

// EntityID идентифицирует агента или игрока внутри одной симуляции.
// Ноль зарезервирован как "нет сущности".
type EntityID uint32
