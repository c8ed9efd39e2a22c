package paymentprovider

// StatusSucceeded — статус намерения после успешного списания.
// Любой другой статус трактуется витриной как неуспех попытки.
const StatusSucceeded = "succeeded"

// BillingDetails содержит платёжные реквизиты покупателя,
// передаваемые процессору при подтверждении.
type BillingDetails struct {
	Name  string
	Email string
}

// PaymentIntent представляет ответ процессора на подтверждение платежа.
type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// PaymentError описывает ошибку, о которой сообщил процессор.
// Текст сообщения показывается пользователю дословно.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	return e.Message
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
