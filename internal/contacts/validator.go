package contacts

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s().]+$`)
)

// Validate turns raw form input into a Draft. Every field is checked and the
// first violation of each is reported; a partial Draft is never returned.
func Validate(input map[string]any, locale Locale) (Draft, error) {
	fields := make(map[string]string)
	var draft Draft

	if name, key := validateName(input[FieldPersonalName]); key != nil {
		fields[FieldPersonalName] = locale.message(*key)
	} else {
		draft.PersonalName = name
	}

	if company, key := validateCompany(input[FieldCompanyName]); key != nil {
		fields[FieldCompanyName] = locale.message(*key)
	} else {
		draft.CompanyName = company
	}

	if phone, key := validatePhone(input[FieldPhoneNumber]); key != nil {
		fields[FieldPhoneNumber] = locale.message(*key)
	} else {
		draft.PhoneNumber = phone
	}

	if email, key := validateEmail(input[FieldEmail]); key != nil {
		fields[FieldEmail] = locale.message(*key)
	} else {
		draft.Email = email
	}

	if services, key := validateServices(input[FieldServices]); key != nil {
		fields[FieldServices] = locale.message(*key)
	} else {
		draft.Services = services
	}

	if details, key := validateDetails(input[FieldMoreDetails]); key != nil {
		fields[FieldMoreDetails] = locale.message(*key)
	} else {
		draft.MoreDetails = details
	}

	if len(fields) > 0 {
		return Draft{}, &ValidationError{Fields: fields}
	}
	return draft, nil
}

func fail(key messageKey) *messageKey { return &key }

// text extracts a trimmed string. ok is false when the value is present but not a string.
func text(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(v), true
	default:
		return "", false
	}
}

func validateName(value any) (string, *messageKey) {
	name, ok := text(value)
	if !ok {
		return "", fail(msgNotText)
	}
	if name == "" {
		return "", fail(msgNameRequired)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fail(msgNameTooLong)
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", fail(msgNameParts)
	}
	for _, part := range parts {
		if utf8.RuneCountInString(part) < MinNamePart {
			return "", fail(msgNamePartLength)
		}
	}
	return name, nil
}

func validateCompany(value any) (*string, *messageKey) {
	company, ok := text(value)
	if !ok {
		return nil, fail(msgNotText)
	}
	if company == "" {
		return nil, nil
	}
	n := utf8.RuneCountInString(company)
	if n < MinNameLength {
		return nil, fail(msgCompanyLength)
	}
	if n > MaxNameLength {
		return nil, fail(msgCompanyTooLong)
	}
	return &company, nil
}

func validatePhone(value any) (string, *messageKey) {
	phone, ok := text(value)
	if !ok {
		return "", fail(msgNotText)
	}
	if phone == "" {
		return "", fail(msgPhoneRequired)
	}
	if utf8.RuneCountInString(phone) > MaxPhoneLength || !phonePattern.MatchString(phone) {
		return "", fail(msgPhoneInvalid)
	}
	digits := CountDigits(phone)
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return "", fail(msgPhoneInvalid)
	}
	return phone, nil
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validateEmail(value any) (string, *messageKey) {
	email, ok := text(value)
	if !ok {
		return "", fail(msgNotText)
	}
	if email == "" {
		return "", fail(msgEmailRequired)
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return "", fail(msgEmailTooLong)
	}
	if !emailPattern.MatchString(email) {
		return "", fail(msgEmailInvalid)
	}
	return email, nil
}

func validateServices(value any) ([]string, *messageKey) {
	var raw []any
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		raw = make([]any, len(v))
		for i := range v {
			raw[i] = v[i]
		}
	case []any:
		raw = v
	default:
		return nil, fail(msgServicesInvalid)
	}
	if len(raw) > MaxServices {
		return nil, fail(msgServicesTooMany)
	}
	services := make([]string, 0, len(raw))
	for _, entry := range raw {
		label, ok := entry.(string)
		if !ok {
			return nil, fail(msgServicesInvalid)
		}
		services = append(services, label)
	}
	return services, nil
}

func validateDetails(value any) (*string, *messageKey) {
	details, ok := text(value)
	if !ok {
		return nil, fail(msgNotText)
	}
	if details == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(details) > MaxDetailsLength {
		return nil, fail(msgDetailsTooLong)
	}
	return &details, nil
}
