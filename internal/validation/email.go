package validation

import (
	"fmt"
	"net/mail"
)

// ValidateEmail проверяет синтаксическую корректность email адреса
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}

	// mail.ParseAddress принимает формы вида "Name <a@b>"; нам нужен голый адрес
	if addr.Address != email {
		return fmt.Errorf("invalid email address")
	}

	return nil
}
