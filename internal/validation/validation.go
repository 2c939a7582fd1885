package validation

import (
	"strings"
	"time"

	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/pricing"
)

// Error описывает ошибку заполнения поля формы.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func fieldError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Card содержит платёжные данные формы оформления заказа.
type Card struct {
	Number string `json:"card_number"`
	Name   string `json:"card_name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// ValidateCard проверяет платёжные данные на момент now.
func ValidateCard(c Card, now time.Time) error {
	if strings.TrimSpace(c.Name) == "" {
		return fieldError("card_name", "Cardholder name is required")
	}
	if !IsValidCardNumber(c.Number) {
		return fieldError("card_number", "Invalid card number")
	}
	if !validExpiry(c.Expiry, now) {
		return fieldError("expiry", "Card has expired or expiry is invalid")
	}
	if !validCVV(c.CVV) {
		return fieldError("cvv", "CVV must be 3 or 4 digits")
	}
	return nil
}

// validExpiry принимает срок MM/YY; карта действует до конца указанного месяца.
func validExpiry(expiry string, now time.Time) bool {
	month, year, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok || len(month) != 2 || len(year) != 2 || !allDigits(month) || !allDigits(year) {
		return false
	}

	m := int(month[0]-'0')*10 + int(month[1]-'0')
	if m < 1 || m > 12 {
		return false
	}
	y := 2000 + int(year[0]-'0')*10 + int(year[1]-'0')

	endOfMonth := time.Date(y, time.Month(m)+1, 1, 0, 0, 0, 0, now.Location())
	return now.Before(endOfMonth)
}

func validCVV(cvv string) bool {
	return (len(cvv) == 3 || len(cvv) == 4) && allDigits(cvv)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// ValidateCustomer проверяет контактные данные и адрес получателя.
func ValidateCustomer(c model.Customer) error {
	required := []struct {
		field string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"zip", c.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fieldError(r.field, "Please fill in all required fields")
		}
	}
	if !strings.Contains(c.Email, "@") {
		return fieldError("email", "Please enter a valid email address")
	}
	return nil
}

// ValidateDelivery проверяет выбор доставки. Для доставки ко времени
// возвращает дату и время в формате YYYY-MM-DDTHH:MM, иначе nil.
func ValidateDelivery(deliveryType model.DeliveryType, date, clock string, now time.Time) (*string, error) {
	switch deliveryType {
	case model.DeliveryImmediate, "":
		return nil, nil
	case model.DeliveryScheduled:
	default:
		return nil, fieldError("delivery_type", "Unknown delivery type")
	}

	if date == "" || clock == "" {
		return nil, fieldError("delivery_date", "Please select a delivery date and time")
	}

	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return nil, fieldError("delivery_date", "Invalid delivery date")
	}
	if _, err := time.Parse(clockLayout, clock); err != nil {
		return nil, fieldError("delivery_time", "Invalid delivery time")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, fieldError("delivery_date", "Delivery date cannot be in the past")
	}

	datetime := date + "T" + clock
	return &datetime, nil
}

// Registration содержит поля формы регистрации.
type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ReferralCode    string `json:"referralCode,omitempty"`
}

// ValidateRegistration проверяет заполненность формы и совпадение паролей.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" ||
		strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fieldError("", "Please fill in all required fields")
	}
	if !strings.Contains(r.Email, "@") {
		return fieldError("email", "Please enter a valid email address")
	}
	if r.Password != r.ConfirmPassword {
		return fieldError("confirmPassword", "Passwords do not match")
	}
	return nil
}

// ValidateLogin проверяет, что указаны email и пароль.
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fieldError("", "Please enter your email and password")
	}
	return nil
}

// ValidateContact проверяет форму обратной связи.
func ValidateContact(c model.ContactRequest) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" ||
		strings.TrimSpace(c.Message) == "" {
		return fieldError("", "Please fill in all required fields")
	}
	if !strings.Contains(c.Email, "@") {
		return fieldError("email", "Please enter a valid email address")
	}
	return nil
}

// ValidateCorporateOrder проверяет корпоративный заказ на момент now.
func ValidateCorporateOrder(r model.CorporateOrderRequest, now time.Time) error {
	if len([]rune(strings.TrimSpace(r.CompanyName))) < 2 {
		return fieldError("company_name", "Company name is required")
	}
	if len([]rune(strings.TrimSpace(r.ContactName))) < 2 {
		return fieldError("contact_name", "Contact name is required")
	}
	if !strings.Contains(r.ContactEmail, "@") {
		return fieldError("contact_email", "Please enter a valid email address")
	}
	if r.ProductID <= 0 {
		return fieldError("product_id", "Please choose a product")
	}
	if r.Quantity < pricing.MinCorporateQuantity {
		return fieldError("quantity", "Minimum order quantity is 5")
	}
	if strings.TrimSpace(r.DeliveryAddress) == "" {
		return fieldError("delivery_address", "Delivery address is required")
	}

	if r.IsRecurring {
		if r.RecurringDay == "" || r.RecurringFrequency == "" {
			return fieldError("recurring_day", "Please choose a delivery day and frequency")
		}
		return nil
	}

	if r.DeliveryDate == "" {
		return fieldError("delivery_date", "Please select a delivery date")
	}
	day, err := time.ParseInLocation(dateLayout, r.DeliveryDate, now.Location())
	if err != nil {
		return fieldError("delivery_date", "Invalid delivery date")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return fieldError("delivery_date", "Delivery date cannot be in the past")
	}
	return nil
}
