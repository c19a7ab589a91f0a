package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSyncUserInput só exige os dois campos. O SIREN é um código opaco para o CRM:
// qualquer valor não encontrado termina como no_person.
func ValidateSyncUserInput(input SyncUserInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.UserID) == "" {
		errors = append(errors, ValidationError{"user_id", "is required"})
	}
	if strings.TrimSpace(input.Siren) == "" {
		errors = append(errors, ValidationError{"siren", "is required"})
	}

	return errors
}
