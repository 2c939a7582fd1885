// Package validation содержит проверки форм, выполняемые без обращения к внешнему API.
package validation

// IsValidCardNumber проверяет номер банковской карты по алгоритму Луна.
// Пробелы и дефисы между группами цифр допускаются.
func IsValidCardNumber(number string) bool {
	digits := make([]int, 0, len(number))
	for _, ch := range number {
		switch {
		case ch == ' ' || ch == '-':
			continue
		case ch < '0' || ch > '9':
			return false
		}
		digits = append(digits, int(ch-'0'))
	}

	if len(digits) < 12 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}
