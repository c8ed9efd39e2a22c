package models

// Product представляет товар каталога.
type Product struct {
	ID          int     `json:"id"`          // Идентификатор товара
	Name        string  `json:"name"`        // Название
	Description string  `json:"description"` // Описание
	Price       float64 `json:"price"`       // Цена
}
