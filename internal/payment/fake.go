package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

func fakeToken(f Form) Token {
	number := strings.ReplaceAll(f.Number, " ", "")
	last4 := number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return Token{
		ID: randomID("tok"),
		Card: TokenCard{
			ID:       randomID("card"),
			Last4:    last4,
			Brand:    "VISA",
			ExpMonth: atoiOrZero(f.ExpMonth),
			ExpYear:  atoiOrZero(f.ExpYear),
		},
	}
}

func fakeCharge(string) Charge {
	return Charge{
		ID:       randomID("chg"),
		Status:   "CAPTURED",
		Amount:   chargeAmount,
		Currency: chargeCurrency,
		Paid:     true,
		Captured: true,
	}
}

func randomID(prefix string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err == nil {
		return fmt.Sprintf("%s_%s", strings.TrimSpace(prefix), hex.EncodeToString(b))
	}
	return fmt.Sprintf("%s_%d", strings.TrimSpace(prefix), time.Now().UnixNano())
}
