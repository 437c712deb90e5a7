package http

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/layer-3/ordauth/internal/bsv"
)

var registerOnce sync.Once

// registerValidators adds the bsvaddr tag to gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("bsvaddr", validateAddress); err != nil {
			panic("http: failed to register bsvaddr validation: " + err.Error())
		}
	})
}

func validateAddress(fl validator.FieldLevel) bool {
	_, err := bsv.ParseAddress(fl.Field().String())
	return err == nil
}
