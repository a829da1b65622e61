package i18n

import "github.com/dalemusser/stratascout/internal/app/system/contentsync"

// Message is a text in both languages.
type Message struct {
	Ar string
	En string
}

// String joins both languages the way the admin panel shows them.
func (m Message) String() string {
	if m.Ar == m.En {
		return m.Ar
	}
	return m.Ar + " | " + m.En
}

// In returns the text for l.
func (m Message) In(l Lang) string {
	if l == English {
		return m.En
	}
	return m.Ar
}

// IsZero reports whether m carries no text.
func (m Message) IsZero() bool { return m.Ar == "" && m.En == "" }

var (
	WrongPassword      = Message{"كلمة المرور غير صحيحة", "Wrong Password"}
	TooManyAttempts    = Message{"محاولات كثيرة، يرجى المحاولة لاحقاً", "Too many attempts, please try again later"}
	LoggedIn           = Message{"تم تسجيل الدخول", "Logged in"}
	LoggedOut          = Message{"تم تسجيل الخروج", "Logged out"}
	SessionExpired     = Message{"انتهت الجلسة، يرجى تسجيل الدخول مجدداً", "Session expired, please log in again"}
	Saved              = Message{"تم حفظ التعديلات بنجاح", "Changes saved successfully"}
	SaveError          = Message{"حدث خطأ في الحفظ", "Error saving data"}
	QuotaExceeded      = Message{"مساحة التخزين ممتلئة", "Storage quota exceeded"}
	StorageUnavailable = Message{"التخزين غير متاح", "Storage is not available"}
	NoData             = Message{"لا توجد بيانات للحفظ", "No data provided"}
	ContentDegraded    = Message{"تعذر تحميل المحتوى المحفوظ، الحفظ متوقف مؤقتاً", "Stored content could not be loaded, saving is paused"}

	ItemAdded           = Message{"تم إضافة العنصر بنجاح", "Item added successfully"}
	ItemEdited          = Message{"تم تعديل العنصر بنجاح", "Item updated successfully"}
	ItemDeleted         = Message{"تم حذف العنصر بنجاح", "Item deleted successfully"}
	ItemNotFound        = Message{"لم يتم العثور على العنصر", "Item not found"}
	ArabicTitleRequired = Message{"العنوان بالعربية مطلوب", "Arabic title is required"}

	NameRequired    = Message{"الاسم مطلوب", "Name is required"}
	EmailRequired   = Message{"البريد الإلكتروني مطلوب", "Email is required"}
	EmailInvalid    = Message{"البريد الإلكتروني غير صحيح", "Invalid email address"}
	MessageRequired = Message{"الرسالة مطلوبة", "Message is required"}
	ContactSent     = Message{"تم إرسال رسالتك بنجاح! سنتواصل معك قريباً", "Message sent successfully! We'll get back to you soon"}
	ContactFailed   = Message{"حدث خطأ في الإرسال. يرجى المحاولة مرة أخرى", "Error sending message. Please try again"}

	MessageDeleted = Message{"تم حذف الرسالة", "Message deleted"}
)

// ForReason maps a save failure reason to its message.
func ForReason(reason contentsync.Reason) Message {
	switch reason {
	case contentsync.ReasonNone:
		return Saved
	case contentsync.ReasonUnauthorized:
		return WrongPassword
	case contentsync.ReasonNoData:
		return NoData
	case contentsync.ReasonStorageUnavailable:
		return StorageUnavailable
	case contentsync.ReasonQuotaExceeded:
		return QuotaExceeded
	default:
		return SaveError
	}
}

// SaveOutcome returns the message to show for res. An unknown failure that
// carries the backend's own text is shown as is.
func SaveOutcome(res contentsync.SaveResult) Message {
	if res.OK {
		return Saved
	}
	if res.Reason == contentsync.ReasonUnknown && res.Message != "" {
		return Message{Ar: res.Message, En: res.Message}
	}
	return ForReason(res.Reason)
}
