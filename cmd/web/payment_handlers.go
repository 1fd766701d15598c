package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/payment"
)

// PaymentModalFrag opens the payment wizard for an unlock gate.
func PaymentModalFrag(w http.ResponseWriter, r *http.Request) {
	gate := r.URL.Query().Get("gate")
	if _, ok := paymentGates[gate]; !ok {
		http.Error(w, "unknown gate", http.StatusNotFound)
		return
	}
	view := buildPaymentView(gate, payment.StepCard, payment.Form{}, nil)
	renderTemplate(w, r, "frag_payment_modal", paymentFragData(r, view))
}

// PaymentStepHandler advances or rewinds the wizard. Moving forward
// validates the current step; moving back never does.
func PaymentStepHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	gate := r.PostFormValue("gate")
	if _, ok := paymentGates[gate]; !ok {
		http.Error(w, "unknown gate", http.StatusNotFound)
		return
	}

	step, _ := strconv.Atoi(r.PostFormValue("step"))
	if step < payment.StepCard || step > payment.StepContact {
		step = payment.StepCard
	}
	form := payment.ParseForm(r.PostForm)

	if r.PostFormValue("direction") == "back" {
		view := buildPaymentView(gate, step-1, form, nil)
		renderTemplate(w, r, "frag_payment_form", paymentFragData(r, view))
		return
	}

	if errs := form.ValidateStep(step); len(errs) > 0 {
		view := buildPaymentView(gate, step, form, errs)
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, "frag_payment_form", paymentFragData(r, view))
		return
	}

	view := buildPaymentView(gate, step+1, form, nil)
	renderTemplate(w, r, "frag_payment_form", paymentFragData(r, view))
}

// PaymentSubmitHandler tokenizes the card, creates the charge, and unlocks
// the gate on success.
func PaymentSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	gate := r.PostFormValue("gate")
	if _, ok := paymentGates[gate]; !ok {
		http.Error(w, "unknown gate", http.StatusNotFound)
		return
	}

	lang := mw.Lang(r)
	form := payment.ParseForm(r.PostForm)
	form.ClientIP = mw.ClientIP(r)

	if errs := form.Validate(); len(errs) > 0 {
		errs["submit"] = "payment.error.incomplete"
		// Land the visitor on the earliest step that still has a problem.
		step := payment.StepContact
		for _, s := range []int{payment.StepCard, payment.StepAddress, payment.StepContact} {
			if len(form.ValidateStep(s)) > 0 {
				step = s
				break
			}
		}
		view := buildPaymentView(gate, step, form, errs)
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, "frag_payment_form", paymentFragData(r, view))
		return
	}

	token, err := paymentClient.CreateToken(r.Context(), form)
	if err != nil {
		renderPaymentFailure(w, r, gate, form, err)
		return
	}
	charge, err := paymentClient.CreateCharge(r.Context(), token.ID, form)
	if err != nil {
		renderPaymentFailure(w, r, gate, form, err)
		return
	}

	sess := mw.GetSession(r)
	sess.Unlock(gate)
	sess.AddFlash("success", i18nOrDefault(lang, "payment.flash.unlocked", "Payment received. Your documents are unlocked."))

	payload := map[string]any{
		"payment:success": map[string]string{
			"gate":     gate,
			"chargeId": charge.ID,
			"status":   charge.Status,
		},
	}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}

	view := buildPaymentView(gate, payment.StepContact, form, nil)
	view.Done = true
	renderTemplate(w, r, "frag_payment_success", paymentFragData(r, view))
}

func renderPaymentFailure(w http.ResponseWriter, r *http.Request, gate string, form payment.Form, err error) {
	log.Printf("payment: charge failed for gate %s: %v", gate, err)
	msg := "payment.error.declined"
	if errors.Is(err, payment.ErrMissingToken) {
		msg = "payment.error.token"
	}
	view := buildPaymentView(gate, payment.StepCard, form, map[string]string{
		"submit": msg,
	})
	w.WriteHeader(http.StatusBadGateway)
	renderTemplate(w, r, "frag_payment_form", paymentFragData(r, view))
}

// paymentFragData wraps a payment view with the layout fields fragments need.
func paymentFragData(r *http.Request, view PaymentView) map[string]any {
	sess := mw.GetSession(r)
	return map[string]any{
		"Lang":      mw.Lang(r),
		"CSRFToken": sess.CSRFToken,
		"Payment":   view,
	}
}
