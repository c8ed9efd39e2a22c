// Package checkout реализует оркестрацию одной попытки оплаты.
//
// Попытка проходит состояния Idle -> LoadingCart -> AwaitingPaymentSetup ->
// ReadyToPay -> Processing -> Succeeded | Failed. Автоматических повторов
// нет: после Failed пользователь начинает заново, что заводит новую попытку
// с новым платёжным намерением. Неуспешное подтверждение гасит сохранённый
// клиентский секрет, поэтому переиспользовать его нельзя.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/models"
	"github.com/celestialcentral/storefront/internal/paymentprovider"
)

// State описывает состояние попытки оплаты.
type State string

const (
	// StateIdle — попытка создана, работа не началась.
	StateIdle State = "idle"
	// StateLoadingCart — читается корзина пользователя.
	StateLoadingCart State = "loading_cart"
	// StateAwaitingPaymentSetup — запрашивается платёжное намерение.
	StateAwaitingPaymentSetup State = "awaiting_payment_setup"
	// StateReadyToPay — секрет получен, ждём действия пользователя.
	StateReadyToPay State = "ready_to_pay"
	// StateProcessing — платёж подтверждается у процессора.
	StateProcessing State = "processing"
	// StateSucceeded — оплата прошла, дальше страница фулфилмента.
	StateSucceeded State = "succeeded"
	// StateFailed — попытка завершилась неуспехом.
	StateFailed State = "failed"
)

var (
	// ErrEmptyCart — в корзине нет позиций, оплата не начинается.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthorized — backend отверг чтение корзины.
	ErrUnauthorized = errors.New("user not authorized")
	// ErrNotReady — оплата запрошена до готовности попытки;
	// отклоняется локально, без обращения к процессору.
	ErrNotReady = errors.New("payment attempt is not ready")
	// ErrAttemptNotFound — попытка не найдена или принадлежит другому пользователю.
	ErrAttemptNotFound = errors.New("payment attempt not found")
)

// Attempt описывает одну попытку оплаты.
type Attempt struct {
	ID           string            `json:"attempt_id"`
	State        State             `json:"state"`
	Items        []models.CartItem `json:"items"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Message      string            `json:"message,omitempty"`

	userID int
}

// Backend определяет операции backend, нужные оркестратору оплаты.
type Backend interface {
	GetCart(ctx context.Context, userID int) ([]models.CartItem, error)
	CreatePaymentIntent(ctx context.Context, items []models.CartItem) (*models.PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, items []models.CartItem) (string, error)
}

// Provider определяет подтверждение платежа у процессора.
type Provider interface {
	ConfirmPaymentIntent(ctx context.Context, clientSecret, cardToken string, billing paymentprovider.BillingDetails) (*paymentprovider.PaymentIntent, error)
}

// Service реализует конечный автомат попытки оплаты.
type Service struct {
	backend  Backend
	provider Provider
	log      *slog.Logger

	mu       sync.Mutex
	attempts map[string]*Attempt
}

// New создает новый Service.
func New(backend Backend, provider Provider, log *slog.Logger) *Service {
	return &Service{
		backend:  backend,
		provider: provider,
		log:      log,
		attempts: make(map[string]*Attempt),
	}
}

// Setup заводит новую попытку: читает корзину и создаёт платёжное
// намерение. Пустая корзина останавливает попытку до любого обращения к
// оплате. Возвращённая попытка находится в состоянии ReadyToPay.
func (s *Service) Setup(ctx context.Context, user *models.User) (*Attempt, error) {
	const op = "services.checkout.Setup"

	attempt := &Attempt{
		ID:     uuid.NewString(),
		State:  StateLoadingCart,
		userID: user.ID,
	}

	items, err := s.backend.GetCart(ctx, user.ID)
	if err != nil {
		attempt.fail("Failed to load cart. Please try again.")
		if backend.IsUnauthorized(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(items) == 0 {
		attempt.fail(ErrEmptyCart.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}
	attempt.Items = items
	attempt.State = StateAwaitingPaymentSetup

	intent, err := s.backend.CreatePaymentIntent(ctx, items)
	if err != nil {
		attempt.fail("Failed to load cart or payment setup. Please try again.")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if intent.ClientSecret == "" {
		attempt.fail("Failed to load cart or payment setup. Please try again.")
		return nil, fmt.Errorf("%s: payment intent client secret not returned", op)
	}

	attempt.ClientSecret = intent.ClientSecret
	attempt.State = StateReadyToPay

	s.mu.Lock()
	s.attempts[attempt.ID] = attempt
	s.mu.Unlock()

	s.log.Info("payment attempt ready",
		slog.String("attempt_id", attempt.ID), slog.Int("items", len(items)))
	return attempt, nil
}

// Pay подтверждает платёж по ранее подготовленной попытке.
//
// Требует состояния ReadyToPay и сохранённого секрета, иначе отклоняет
// запрос локально. Статус "succeeded" переводит попытку в Succeeded;
// любой другой исход — в Failed с дословным сообщением процессора.
// Терминальная попытка удаляется из хранилища: повтор требует нового
// Setup, а хранилище не растёт с числом обработанных оплат.
func (s *Service) Pay(ctx context.Context, user *models.User, attemptID, cardToken string) (*Attempt, error) {
	const op = "services.checkout.Pay"

	s.mu.Lock()
	attempt, ok := s.attempts[attemptID]
	if !ok || attempt.userID != user.ID {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrAttemptNotFound)
	}
	if attempt.State != StateReadyToPay || attempt.ClientSecret == "" {
		s.mu.Unlock()
		return attempt, fmt.Errorf("%s: %w", op, ErrNotReady)
	}
	attempt.State = StateProcessing
	clientSecret := attempt.ClientSecret
	s.mu.Unlock()

	billing := paymentprovider.BillingDetails{Name: user.Name, Email: user.Email}
	result, err := s.provider.ConfirmPaymentIntent(ctx, clientSecret, cardToken, billing)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Любой исход подтверждения терминален: попытка удаляется из хранилища,
	// вызывающему остаётся её финальный снимок.
	delete(s.attempts, attemptID)

	if err != nil {
		var payErr *paymentprovider.PaymentError
		if errors.As(err, &payErr) {
			attempt.fail(payErr.Message)
		} else {
			attempt.fail("Failed to process payment. Please try again.")
		}
		s.log.Error("payment confirmation failed",
			slog.String("attempt_id", attempt.ID), slog.Any("err", err))
		return attempt, fmt.Errorf("%s: %w", op, err)
	}

	if result.Status != paymentprovider.StatusSucceeded {
		attempt.fail(fmt.Sprintf("payment not completed: status %q", result.Status))
		return attempt, fmt.Errorf("%s: unexpected payment status %q", op, result.Status)
	}

	attempt.State = StateSucceeded
	attempt.ClientSecret = ""
	s.log.Info("payment succeeded", slog.String("attempt_id", attempt.ID))
	return attempt, nil
}

// HostedSession создаёт hosted-checkout сессию под текущую корзину
// (ранний вариант оплаты через страницу процессора).
func (s *Service) HostedSession(ctx context.Context, user *models.User) (string, error) {
	const op = "services.checkout.HostedSession"

	items, err := s.backend.GetCart(ctx, user.ID)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	sessionID, err := s.backend.CreateCheckoutSession(ctx, items)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if sessionID == "" {
		return "", fmt.Errorf("%s: failed to create checkout session", op)
	}
	return sessionID, nil
}

// fail переводит попытку в Failed и гасит секрет: новая попытка
// оплаты всегда требует нового платёжного намерения.
func (a *Attempt) fail(message string) {
	a.State = StateFailed
	a.Message = message
	a.ClientSecret = ""
}
