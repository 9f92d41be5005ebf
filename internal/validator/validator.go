// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pocketledger/internal/models"
)

// phoneRegex accepts an optional leading '+', then 7 to 15 digits with
// optional space, dash, dot or parenthesis separators.
var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{7,24}$`)
	digitRegex = regexp.MustCompile(`[0-9]`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// standalone validates single values outside of request binding.
var standalone = validator.New()

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", validatePhone)
		_ = v.RegisterValidation("pin", validatePIN)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("download_format", validateDownloadFormat)
	}
}

// IsPhone reports whether s looks like a phone number.
func IsPhone(s string) bool {
	if !phoneRegex.MatchString(s) {
		return false
	}
	n := len(digitRegex.FindAllString(s, -1))
	return n >= 7 && n <= 15
}

// IsPIN reports whether s is a 4 to 6 digit PIN.
func IsPIN(s string) bool {
	return pinRegex.MatchString(s)
}

// IsEmail reports whether s is a well-formed email address.
func IsEmail(s string) bool {
	return standalone.Var(s, "required,email") == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func validatePIN(fl validator.FieldLevel) bool {
	return IsPIN(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeDebit, models.TransactionTypeCredit:
		return true
	}
	return false
}

func validateDownloadFormat(fl validator.FieldLevel) bool {
	switch models.DownloadFormat(fl.Field().String()) {
	case models.DownloadFormatCSV, models.DownloadFormatJSON, models.DownloadFormatXLSX:
		return true
	}
	return false
}
