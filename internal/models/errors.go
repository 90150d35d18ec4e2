package models

import (
	"fmt"
	"strings"
)

// Erros de domínio do ciclo de vida de acesso. Handlers mapeiam cada tipo
// para um status HTTP e uma mensagem específica; nenhum deles é fatal.

// ValidationError lista todos os campos obrigatórios ausentes ou inválidos
// de uma só vez, para o painel destacar o formulário inteiro.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos obrigatórios ausentes ou inválidos: " + strings.Join(e.Fields, ", ")
}

// PreconditionError nomeia o primeiro campo faltante na ordem fixa de
// cobrança do formulário, para o operador preencher incrementalmente.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("emissão bloqueada: campo %q não preenchido", e.Field)
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " não encontrado"
}

type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}
