// Package messages resolves localized, caller-facing text for status codes
// and notification templates.
package messages

import "fmt"

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

// Catalog maps status codes and notification templates to localized text.
// Unknown locales fall back to English; unknown codes fall back to the
// generic failure message.
type Catalog struct {
	statusText map[string]map[int]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		statusText: map[string]map[int]string{
			LocaleEnglish: {
				0:  "transfer completed successfully",
				-1: "transfer could not be completed",
				20: "invalid source phone number",
				21: "invalid destination phone number",
				22: "source and destination numbers are the same",
				23: "incorrect PIN",
				24: "amount exceeds the maximum transfer amount",
				25: "amount is below the minimum transfer amount",
				26: "subscription not found",
				27: "service configuration error",
				28: "source phone number not found",
				29: "destination phone number not found",
				30: "transfer to this destination is not allowed",
				31: "daily transfer count limit reached",
				32: "remaining balance would fall below the allowed minimum",
				33: "daily transfer amount cap reached",
				34: "amount exceeds the allowed share of the current balance",
				35: "billing service unavailable",
				36: "reservation code expired",
			},
			LocaleArabic: {
				0:  "تم تحويل الرصيد بنجاح",
				-1: "تعذر إتمام التحويل",
				30: "التحويل إلى هذا الرقم غير مسموح",
				31: "تم بلوغ الحد اليومي لعدد التحويلات",
				35: "خدمة الفوترة غير متوفرة",
			},
		},
	}
}

// StatusMessage returns the localized text for a status code.
func (c *Catalog) StatusMessage(code int, locale string) string {
	table, ok := c.statusText[locale]
	if !ok {
		table = c.statusText[LocaleEnglish]
	}
	if msg, ok := table[code]; ok {
		return msg
	}
	if msg, ok := c.statusText[LocaleEnglish][code]; ok {
		return msg
	}
	return c.statusText[LocaleEnglish][-1]
}

// TransferSent renders the sender's notification text.
func (c *Catalog) TransferSent(locale string, amount float64, dest string) string {
	if locale == LocaleArabic {
		return fmt.Sprintf("تم تحويل %.3f ريال إلى الرقم %s", amount, dest)
	}
	return fmt.Sprintf("You have transferred %.3f to %s.", amount, dest)
}

// TransferReceived renders the recipient's notification text.
func (c *Catalog) TransferReceived(locale string, amount float64, src string) string {
	if locale == LocaleArabic {
		return fmt.Sprintf("استلمت %.3f ريال من الرقم %s", amount, src)
	}
	return fmt.Sprintf("You have received %.3f from %s.", amount, src)
}

// IsRightToLeft reports whether notifications in this locale use an RTL
// script.
func (c *Catalog) IsRightToLeft(locale string) bool {
	return locale == LocaleArabic
}
