package usecase

import (
	validator "gopkg.in/go-playground/validator.v9"
)

var validate = validator.New()

// validateRepoInput maps validation failures on User/Repo fields to the
// package sentinel errors.
func validateRepoInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fieldErr := range validationErrors {
		switch fieldErr.Field() {
		case "User":
			return ErrUserRequired
		case "Repo":
			return ErrRepoRequired
		}
	}
	return err
}
