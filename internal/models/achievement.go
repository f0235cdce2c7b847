package models

// Achievement - справочная запись достижения (каталог, контент).
// Правила открытия живут в пакете game, здесь только отображаемые данные.
type Achievement struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Condition   string `json:"condition" db:"condition"` // Человекочитаемое условие для экрана результатов
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}
