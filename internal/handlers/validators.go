package handlers

import (
	"fmt"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the calendar validators to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("civildate", validateCivilDate); err != nil {
		return fmt.Errorf("register civildate: %w", err)
	}
	if err := v.RegisterValidation("yearmonth", validateYearMonth); err != nil {
		return fmt.Errorf("register yearmonth: %w", err)
	}
	return nil
}

// validateCivilDate accepts YYYY-MM-DD naming a real calendar day.
func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

// validateYearMonth accepts YYYY-MM.
func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := domain.ParseMonth(fl.Field().String())
	return err == nil
}
