package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — общий признак ошибки входных данных; проверяется через errors.Is.
	ErrValidation = errors.New("validation failed")
	// Ошибка номера стола меньше единицы.
	ErrTableNumberInvalid = errors.New("table_number must be greater than zero")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка цены позиции вне диапазона [0, MaxAmount] или не конечной.
	ErrItemPriceInvalid = errors.New("item price must be between 0 and 9999999999.99")
	// Ошибка статуса вне словаря pending/ready/paid.
	ErrStatusInvalid = errors.New("status must be one of: pending, ready, paid")
	// Ошибка итоговой суммы больше MaxAmount.
	ErrTotalTooLarge = errors.New("order total must not exceed 9999999999.99")
	// Ошибка несоответствия суммы заказа и суммы позиций.
	ErrTotalMismatch = errors.New("order total does not match items sum")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
)

// ValidationError описывает некорректное поле запроса.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError создаёт ошибку валидации для поля.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is позволяет сопоставлять любую ValidationError с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidation проверяет, является ли ошибка ошибкой входных данных.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, что заказ (или результат фильтра) не найден.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}
