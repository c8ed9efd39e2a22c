package models

// License представляет запись о праве использования купленных товаров.
// Создаётся backend-ом в ответ на запрос фулфилмента; одна лицензия может
// объединять несколько купленных позиций.
type License struct {
	LicenseKey    string        `json:"licenseKey"`    // Ключ лицензии
	Name          string        `json:"name"`          // Название лицензии
	UsesRemaining int           `json:"usesRemaining"` // Оставшееся число использований, >= 0
	Items         []LicenseItem `json:"items"`         // Купленные позиции
}

// LicenseItem описывает одну позицию внутри лицензии.
type LicenseItem struct {
	ProductID int    `json:"productId"` // Идентификатор товара
	Name      string `json:"name"`      // Название товара
	Quantity  int    `json:"quantity,omitempty"`
}
