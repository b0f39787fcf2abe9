package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validador global, seguro para uso concurrente.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un struct según sus tags `validate`. Devuelve un error con el
// primer campo ofensivo (suficiente para respuestas 400/422 con el campo en cuestión).
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if ok := asValidationErrors(err, &errs); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("campo %s: regla '%s' no cumplida", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}
