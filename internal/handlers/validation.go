package handlers

import (
	"fmt"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom binding tags used by the report DTOs.
// Registering again on the same engine replaces the previous function.
func registerValidators() error {
	engine := binding.Validator.Engine()
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unsupported binding validator engine %T", engine)
	}
	if err := v.RegisterValidation("period", validatePeriod); err != nil {
		return fmt.Errorf("failed to register period validator: %w", err)
	}
	return nil
}

// validatePeriod accepts "YYYY", "YYYY-Qn" and "YYYY-Mnn" labels.
func validatePeriod(fl validator.FieldLevel) bool {
	_, err := domain.ParsePeriod(fl.Field().String())
	return err == nil
}
