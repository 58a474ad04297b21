package middlewares

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/UFAZ-L2-CS1/DADLY/services"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator:
//
//	ingredient  a pantry ingredient name (see services.NormalizeIngredient)
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("ingredient", func(fl validator.FieldLevel) bool {
			return services.ValidIngredientName(fl.Field().String())
		})
	})
	return err
}
