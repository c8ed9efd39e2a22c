// Package models содержит доменные структуры витрины Celestial Central:
// позиции корзины, товары, пользователей, лицензии и платёжные данные,
// а также вспомогательные типы для приёма JSON-запросов.
package models

// CartItem представляет одну позицию серверной корзины пользователя.
// Клиент держит только временную копию на время одного запроса,
// источником истины всегда остаётся backend.
type CartItem struct {
	ProductID int     `json:"productId"` // Идентификатор товара
	Name      string  `json:"name"`      // Название товара
	Price     float64 `json:"price"`     // Цена за единицу; отсутствующая цена трактуется как 0
	Quantity  int     `json:"quantity"`  // Количество, всегда >= 1 на стороне backend
}

// Total возвращает стоимость позиции. Отсутствующая цена или количество
// деградируют до нуля, а не ломают отображение корзины.
func (i CartItem) Total() float64 {
	if i.Price < 0 || i.Quantity < 0 {
		return 0
	}
	return i.Price * float64(i.Quantity)
}
