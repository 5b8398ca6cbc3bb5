package contacts

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects the language of client-facing validation messages.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

var localeMatcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// ParseLocale maps a language tag or Accept-Language value to a supported locale.
func ParseLocale(value string) Locale {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(value))
	if err != nil || len(tags) == 0 {
		return LocaleEnglish
	}
	tag, _, _ := localeMatcher.Match(tags...)
	if base, _ := tag.Base(); base.String() == "ar" {
		return LocaleArabic
	}
	return LocaleEnglish
}

// LocaleFromRequest prefers an explicit ?lang= query parameter over Accept-Language.
func LocaleFromRequest(r *http.Request) Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return ParseLocale(lang)
	}
	return ParseLocale(r.Header.Get("Accept-Language"))
}

type messageKey int

const (
	msgInvalidData messageKey = iota
	msgNotText
	msgNameRequired
	msgNameTooLong
	msgNameParts
	msgNamePartLength
	msgCompanyLength
	msgCompanyTooLong
	msgPhoneRequired
	msgPhoneInvalid
	msgEmailRequired
	msgEmailInvalid
	msgEmailTooLong
	msgServicesInvalid
	msgServicesTooMany
	msgDetailsTooLong
	msgStoreFailed
)

var messages = map[Locale]map[messageKey]string{
	LocaleEnglish: {
		msgInvalidData:     "The given data was invalid.",
		msgNotText:         "Must be text",
		msgNameRequired:    "Name is required",
		msgNameTooLong:     "Name may not exceed 100 characters",
		msgNameParts:       "First and last name required",
		msgNamePartLength:  "Each name must be at least 2 letters",
		msgCompanyLength:   "Company name must be at least 2 letters",
		msgCompanyTooLong:  "Company name may not exceed 100 characters",
		msgPhoneRequired:   "Phone number is required",
		msgPhoneInvalid:    "Invalid phone number",
		msgEmailRequired:   "Email is required",
		msgEmailInvalid:    "Invalid email address",
		msgEmailTooLong:    "Email may not exceed 255 characters",
		msgServicesInvalid: "Services must be a list of names",
		msgServicesTooMany: "Select at most 10 services",
		msgDetailsTooLong:  "Details may not exceed 5000 characters",
		msgStoreFailed:     "We could not save your request. Please try again later.",
	},
	LocaleArabic: {
		msgInvalidData:     "البيانات المدخلة غير صالحة.",
		msgNotText:         "يجب أن تكون القيمة نصاً",
		msgNameRequired:    "الاسم مطلوب",
		msgNameTooLong:     "الاسم يجب ألا يتجاوز 100 حرف",
		msgNameParts:       "يجب إدخال الاسم الأول والأخير",
		msgNamePartLength:  "كل اسم يجب أن يحتوي على حرفين على الأقل",
		msgCompanyLength:   "اسم الشركة يجب أن يحتوي على حرفين على الأقل",
		msgCompanyTooLong:  "اسم الشركة يجب ألا يتجاوز 100 حرف",
		msgPhoneRequired:   "رقم الهاتف مطلوب",
		msgPhoneInvalid:    "رقم الهاتف غير صالح",
		msgEmailRequired:   "البريد الإلكتروني مطلوب",
		msgEmailInvalid:    "البريد الإلكتروني غير صالح",
		msgEmailTooLong:    "البريد الإلكتروني يجب ألا يتجاوز 255 حرفاً",
		msgServicesInvalid: "يجب أن تكون الخدمات قائمة من الأسماء",
		msgServicesTooMany: "يمكنك اختيار 10 خدمات كحد أقصى",
		msgDetailsTooLong:  "التفاصيل يجب ألا تتجاوز 5000 حرف",
		msgStoreFailed:     "تعذر حفظ طلبك. يرجى المحاولة لاحقاً.",
	},
}

func (l Locale) message(key messageKey) string {
	if set, ok := messages[l]; ok {
		if msg, ok := set[key]; ok {
			return msg
		}
	}
	return messages[LocaleEnglish][key]
}
