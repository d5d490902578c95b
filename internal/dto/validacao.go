package dto

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"agendamento/backend/internal/model"
)

// RegistrarValidacoes registra as tags próprias no validador do gin
func RegistrarValidacoes(v *validator.Validate) error {
	if err := v.RegisterValidation("status_agendamento", func(fl validator.FieldLevel) bool {
		return model.StatusValido(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("permissao", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.Permissoes, fl.Field().String())
	})
}
