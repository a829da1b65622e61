// internal/app/features/errors/errors.go
package errors

import (
	"embed"
	"net/http"

	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pages holds the shared status page used by every error response.
//
//go:embed templates/*.gohtml
var pages embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "errors",
		FS:       pages,
		Patterns: []string{"templates/*.gohtml"},
	})
}

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}, fields...)
	e.logger.Error(msg, allFields...)
}

// Handler provides error page handlers.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

type pageData struct {
	viewdata.BaseVM
	Status int
	Detail i18n.Message
}

var (
	forbiddenTitle    = i18n.Message{Ar: "الوصول مرفوض", En: "Access denied"}
	forbiddenDetail   = i18n.Message{Ar: "ليست لديك صلاحية لعرض هذه الصفحة", En: "You do not have permission to view this page"}
	unauthorizedTitle = i18n.Message{Ar: "غير مصرح", En: "Unauthorized"}
	unauthorizedText  = i18n.Message{Ar: "يرجى تسجيل الدخول للمتابعة", En: "Please log in to continue"}
	notFoundTitle     = i18n.Message{Ar: "الصفحة غير موجودة", En: "Not found"}
	notFoundDetail    = i18n.Message{Ar: "لم نتمكن من العثور على هذه الصفحة", En: "We could not find that page"}
	internalTitle     = i18n.Message{Ar: "خطأ في الخادم", En: "Server error"}
	internalDetail    = i18n.Message{Ar: "حدث خطأ غير متوقع، يرجى المحاولة لاحقاً", En: "Something went wrong, please try again later"}
)

func render(w http.ResponseWriter, r *http.Request, status int, title, detail i18n.Message) {
	w.WriteHeader(status)
	templates.Render(w, r, "errors/page", pageData{
		BaseVM: viewdata.New(r, title),
		Status: status,
		Detail: detail,
	})
}

// Forbidden renders the 403 forbidden page.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusForbidden, forbiddenTitle, forbiddenDetail)
}

// Unauthorized renders the 401 unauthorized page.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusUnauthorized, unauthorizedTitle, unauthorizedText)
}

// NotFound renders the 404 not found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, notFoundTitle, notFoundDetail)
}

// InternalError renders the 500 internal server error page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusInternalServerError, internalTitle, internalDetail)
}
