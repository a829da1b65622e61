package viewdata

import (
	"net/url"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
)

// FlashParam carries a flash code across a redirect.
const FlashParam = "flash"

type flash struct {
	msg     i18n.Message
	isError bool
}

var flashes = map[string]flash{
	"saved":               {i18n.Saved, false},
	"save-error":          {i18n.SaveError, true},
	"wrong-password":      {i18n.WrongPassword, true},
	"no-data":             {i18n.NoData, true},
	"storage-unavailable": {i18n.StorageUnavailable, true},
	"quota-exceeded":      {i18n.QuotaExceeded, true},
	"too-many-attempts":   {i18n.TooManyAttempts, true},
	"logged-in":           {i18n.LoggedIn, false},
	"logged-out":          {i18n.LoggedOut, false},
	"session-expired":     {i18n.SessionExpired, true},
	"item-added":          {i18n.ItemAdded, false},
	"item-edited":         {i18n.ItemEdited, false},
	"item-deleted":        {i18n.ItemDeleted, false},
	"item-not-found":      {i18n.ItemNotFound, true},
	"contact-sent":        {i18n.ContactSent, false},
	"contact-failed":      {i18n.ContactFailed, true},
	"name-required":       {i18n.NameRequired, true},
	"email-required":      {i18n.EmailRequired, true},
	"email-invalid":       {i18n.EmailInvalid, true},
	"message-required":    {i18n.MessageRequired, true},
	"message-deleted":     {i18n.MessageDeleted, false},
}

var reasonCodes = map[contentsync.Reason]string{
	contentsync.ReasonUnauthorized:       "wrong-password",
	contentsync.ReasonNoData:             "no-data",
	contentsync.ReasonStorageUnavailable: "storage-unavailable",
	contentsync.ReasonQuotaExceeded:      "quota-exceeded",
}

// LookupFlash returns the message for code.
func LookupFlash(code string) (msg i18n.Message, isError, ok bool) {
	f, ok := flashes[code]
	return f.msg, f.isError, ok
}

// SaveFlash returns the flash code for a save outcome.
func SaveFlash(res contentsync.SaveResult) string {
	if res.OK {
		return "saved"
	}
	if code, ok := reasonCodes[res.Reason]; ok {
		return code
	}
	return "save-error"
}

// FlashURL appends ?flash=code to path, keeping any fragment last.
func FlashURL(path, code string) string {
	frag := ""
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path, frag = path[:i], path[i:]
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + FlashParam + "=" + url.QueryEscape(code) + frag
}
