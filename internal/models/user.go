package models

// User представляет аутентифицированного пользователя витрины.
// Данные приходят от backend при логине и далее живут в authState.
type User struct {
	ID    int    `json:"id"`    // Идентификатор пользователя в backend
	Name  string `json:"name"`  // Имя
	Email string `json:"email"` // Email
}

// AuthState описывает состояние аутентификации процесса.
// Либо IsAuthenticated=true и User != nil, либо оба поля пустые.
type AuthState struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user"`
}
