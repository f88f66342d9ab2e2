package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	})
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	return v
}

// ValidatePhone reports whether phone consists of exactly 10 digits.
func ValidatePhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateInput runs struct tags on in and reports the first failing field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domainErrors.NewValidationError(fe.Field(), describe(fe))
	}
	return err
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "phone":
		return "must contain 10 digits"
	case "orderstatus":
		return "is not a valid order status"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return "is invalid"
	}
}

var hundred = decimal.NewFromInt(100)

// ParsePercent parses a decimal percentage with an optional trailing %.
func ParsePercent(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("percentage %s out of range", d)
	}
	return d, nil
}

// ValidatePaymentSplit checks that the three payment parts add up to exactly 100 percent.
func ValidatePaymentSplit(advance, uponDelivery, afterDelivery string) error {
	parts := []struct {
		field string
		raw   string
	}{
		{"advance", advance},
		{"uponDelivry", uponDelivery},
		{"afterDelivry", afterDelivery},
	}

	sum := decimal.Zero
	for _, p := range parts {
		d, err := ParsePercent(p.raw)
		if err != nil {
			return domainErrors.NewValidationError(p.field, "must be a percentage between 0 and 100")
		}
		sum = sum.Add(d)
	}
	if !sum.Equal(hundred) {
		return domainErrors.NewValidationError("advance", fmt.Sprintf("payment parts must sum to 100%%, got %s%%", sum))
	}
	return nil
}

// translateStoreError turns storage conflicts into caller facing validation errors.
func translateStoreError(err error) error {
	var dup *domainErrors.DuplicateError
	if errors.As(err, &dup) {
		return domainErrors.NewValidationError(dup.Field, "already exists")
	}
	var ref *domainErrors.ReferenceError
	if errors.As(err, &ref) {
		return domainErrors.NewValidationError(ref.Field, "does not exist")
	}
	return err
}

func validateStatus(status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.NewValidationError("statusOrder", "is not a valid order status")
	}
	return nil
}
