package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validatable is implemented by requests with checks beyond struct tags.
type Validatable interface {
	Validate() error
}

// DecorateWithBodyEx parses the JSON body into T, validates it and passes it to next.
// Parsing and validation failures are answered with 400.
func DecorateWithBodyEx[T any](v *validator.Validate, next func(c *fiber.Ctx, req *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)

		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to parse request: %s", err))
			}
		}

		if err := validateStruct(v, req); err != nil {
			return err
		}

		return next(c, req)
	}
}

// DecorateWithQueryEx parses query parameters into T, validates it and passes it to next.
func DecorateWithQueryEx[T any](v *validator.Validate, next func(c *fiber.Ctx, req *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)

		if err := c.QueryParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to parse query: %s", err))
		}

		if err := validateStruct(v, req); err != nil {
			return err
		}

		return next(c, req)
	}
}

func validateStruct(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if r, ok := req.(Validatable); ok {
		if err := r.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return nil
}
