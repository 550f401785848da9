package usecase

import (
	"strings"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/validator"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// validateDraft fails fast with a Validation error before anything is sent.
func validateDraft(v usecasecontract.IValidator, draft interface{}) error {
	if v == nil {
		return nil
	}
	if err := v.ValidateStruct(draft); err != nil {
		return apperror.Validation(strings.Join(validator.Messages(err), "; "), err)
	}
	return nil
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Validation(name+" should not be empty", nil)
	}
	return nil
}
