package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// newValidator returns a validator that also understands the "clock" tag
// used on weekly slot times.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := schedule.ParseClock(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}
