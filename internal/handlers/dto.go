package handlers

import (
	"sheetform/internal/contact"
)

type ContactResponse struct {
	Form       contact.FormState `json:"form"`
	Status     string            `json:"status"`
	Submitting bool              `json:"submitting"`
}

type SetFieldRequest struct {
	Value *string `json:"value"`
}

type SubmitResponse struct {
	Outcome contact.Outcome   `json:"outcome" swaggertype:"string" enums:"sent,rejected,error"`
	Status  string            `json:"status"`
	Form    contact.FormState `json:"form"`
}
