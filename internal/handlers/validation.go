package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/schemas"
	"alfredoptarigan/resume-screener/internal/services"
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report JSON field names, not Go ones.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody checks the raw body against a schema, decodes it and validates struct tags.
func parseBody(c *fiber.Ctx, v *validator.Validate, schemaName string, out any) error {
	if err := schemas.Validate(schemaName, c.Body()); err != nil {
		return err
	}
	if err := c.BodyParser(out); err != nil {
		return &services.ValidationError{Message: "invalid request payload"}
	}
	if err := v.Struct(out); err != nil {
		return describeValidation(err)
	}
	return nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &services.ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return &services.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s is required", fe.Field())}
	case "min":
		return &services.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())}
	default:
		return &services.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}

// respondError maps validation problems to 400 and hides everything else behind a 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Message,
		})
	}

	var serr *schemas.ValidationError
	if errors.As(err, &serr) {
		details := make([]string, 0, len(serr.Errors))
		for _, fe := range serr.Errors {
			details = append(details, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request payload",
			"details": details,
		})
	}

	log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred while processing the request",
	})
}
