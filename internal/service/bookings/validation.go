package bookings

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// validatePatch проверяет описательные поля патча
func validatePatch(patch domain.BookingPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	// поставщик и тип каучука обязательны, очистить их нельзя
	if patch.SupplierID != nil && strings.TrimSpace(*patch.SupplierID) == "" {
		return fmt.Errorf("%w: supplier cannot be empty", ErrValidation)
	}
	if patch.RubberType != nil && strings.TrimSpace(*patch.RubberType) == "" {
		return fmt.Errorf("%w: rubber type cannot be empty", ErrValidation)
	}

	for _, field := range []*string{patch.SupplierID, patch.SupplierCode, patch.SupplierName} {
		if field != nil && len(*field) > domain.MaxSupplierFieldLength {
			return fmt.Errorf("%w: supplier fields must be at most %d characters", ErrValidation, domain.MaxSupplierFieldLength)
		}
	}
	for _, field := range []*string{patch.TruckType, patch.TruckRegister} {
		if field != nil && len(*field) > domain.MaxTruckFieldLength {
			return fmt.Errorf("%w: truck fields must be at most %d characters", ErrValidation, domain.MaxTruckFieldLength)
		}
	}
	if patch.Recorder != nil && len(*patch.Recorder) > domain.MaxRecorderLength {
		return fmt.Errorf("%w: recorder must be at most %d characters", ErrValidation, domain.MaxRecorderLength)
	}

	return nil
}
