package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if strings.TrimSpace(req.SlotLabel) == "" {
		return fmt.Errorf("%w: slot is required", ErrValidation)
	}

	if strings.TrimSpace(req.SupplierID) == "" {
		return fmt.Errorf("%w: supplier is required", ErrValidation)
	}

	if strings.TrimSpace(req.RubberType) == "" {
		return fmt.Errorf("%w: rubber type is required", ErrValidation)
	}

	if len(req.SupplierID) > domain.MaxSupplierFieldLength ||
		len(req.SupplierCode) > domain.MaxSupplierFieldLength ||
		len(req.SupplierName) > domain.MaxSupplierFieldLength {
		return fmt.Errorf("%w: supplier fields must be at most %d characters", ErrValidation, domain.MaxSupplierFieldLength)
	}

	if tooLong(req.TruckType, domain.MaxTruckFieldLength) || tooLong(req.TruckRegister, domain.MaxTruckFieldLength) {
		return fmt.Errorf("%w: truck fields must be at most %d characters", ErrValidation, domain.MaxTruckFieldLength)
	}

	if len(req.Recorder) > domain.MaxRecorderLength {
		return fmt.Errorf("%w: recorder must be at most %d characters", ErrValidation, domain.MaxRecorderLength)
	}

	return nil
}

func tooLong(s *string, max int) bool {
	return s != nil && len(*s) > max
}
