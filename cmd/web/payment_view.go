package main

import (
	"cvaluepro.com/cvalue-web/internal/payment"
)

// paymentGates maps unlock gates to their price label key.
var paymentGates = map[string]string{
	"resume":   "payment.price.resume",
	"cover":    "payment.price.cover",
	"linkedin": "payment.price.linkedin",
	"bundle":   "payment.price.bundle",
}

// PaymentView drives the payment wizard modal and its step fragments.
type PaymentView struct {
	Gate     string
	PriceKey string
	Step     int
	LastStep int
	Form     payment.Form
	// Values carries every collected field through hidden inputs so steps
	// survive round trips.
	Values map[string]string
	// Errors maps field name to an i18n message key.
	Errors map[string]string
	Done   bool
}

func buildPaymentView(gate string, step int, form payment.Form, errs map[string]string) PaymentView {
	if step < payment.StepCard {
		step = payment.StepCard
	}
	if step > payment.StepContact {
		step = payment.StepContact
	}
	return PaymentView{
		Gate:     gate,
		PriceKey: paymentGates[gate],
		Step:     step,
		LastStep: payment.StepContact,
		Form:     form,
		Values:   form.Values(),
		Errors:   errs,
	}
}
