package models

// DummyLogin используется для приёма данных формы логина из JSON-запроса
// до их валидации.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"` // Email пользователя
	Password string `json:"password" validate:"required"`    // Пароль
}

// DummySignup используется для приёма данных формы регистрации.
type DummySignup struct {
	Name     string `json:"name" validate:"required"`        // Имя
	Email    string `json:"email" validate:"required,email"` // Email
	Password string `json:"password" validate:"required"`    // Пароль
}

// DummyPay используется для приёма запроса на оплату с платёжным токеном
// карты, полученным виджетом на странице checkout.
type DummyPay struct {
	AttemptID string `json:"attempt_id" validate:"required,uuid"` // Идентификатор попытки оплаты
	CardToken string `json:"card_token" validate:"required"`      // Токен карты от платёжного виджета
}
