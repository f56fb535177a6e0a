package models

import (
	"errors"
	"strings"
)

type RegisterClientRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Pin     string `json:"pin"`
}

func (r RegisterClientRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Surname) == "" {
		errs = append(errs, "surname is required")
	}
	pin := strings.TrimSpace(r.Pin)
	if len(pin) < 4 || !digitsOnly(pin) {
		errs = append(errs, "pin must be at least 4 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ClientResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

type VerifyPinRequest struct {
	ClientID int64  `json:"clientId"`
	Pin      string `json:"pin"`
}

func (r VerifyPinRequest) Validate() error {
	var errs []string

	if r.ClientID <= 0 {
		errs = append(errs, "clientId is required")
	}
	if strings.TrimSpace(r.Pin) == "" {
		errs = append(errs, "pin is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type VerifyPinResponse struct {
	ClientID   int64 `json:"clientId"`
	IsValidPin bool  `json:"isValidPin"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
