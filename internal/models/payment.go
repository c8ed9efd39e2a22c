package models

// PaymentIntent — непрозрачный хэндл одной платёжной попытки.
// Создаётся backend-ом на каждую попытку оплаты и погашается ровно один раз
// при подтверждении платежа; повторная попытка требует нового хэндла.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}
