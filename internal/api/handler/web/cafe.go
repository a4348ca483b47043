package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	csrf "github.com/utrack/gin-csrf"
	"go.uber.org/zap"

	"github.com/cafeandwifi/cafe-directory/internal/api/handler/web/form"
	"github.com/cafeandwifi/cafe-directory/internal/config"
	"github.com/cafeandwifi/cafe-directory/internal/domain"
	"github.com/cafeandwifi/cafe-directory/internal/service"
)

const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

type CafeService interface {
	AddCafe(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error)
	ListCafes(ctx context.Context) ([]domain.Cafe, error)
	GetCafe(ctx context.Context, id uint) (domain.Cafe, error)
	UpdateCafe(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error)
	DeleteCafe(ctx context.Context, id uint) error
	ReportClosure(ctx context.Context, id uint, sender, message string) (domain.Cafe, error)
}

// CafeHandler serves the HTML pages and form submissions. It holds the
// API config for the admin key comparison on the delete path.
type CafeHandler struct {
	conf *config.APIConfig
	svc  CafeService
}

func NewCafeHandler(conf *config.APIConfig, svc CafeService) *CafeHandler {
	return &CafeHandler{
		conf: conf,
		svc:  svc,
	}
}

func (h *CafeHandler) HandleHome(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": takeFlashes(ctx),
	})
}

func (h *CafeHandler) HandleListCafes(ctx *gin.Context) {
	cafes, err := h.svc.ListCafes(ctx.Request.Context())
	if err != nil {
		h.renderInternalError(ctx, fmt.Errorf("web.HandleListCafes -> h.svc.ListCafes -> %w", err))

		return
	}

	ctx.HTML(http.StatusOK, "cafes.html", gin.H{
		"Cafes":   cafes,
		"Flashes": takeFlashes(ctx),
	})
}

func (h *CafeHandler) HandleShowAddCafe(ctx *gin.Context) {
	h.renderAddCafe(ctx, &form.AddCafeForm{}, nil)
}

func (h *CafeHandler) HandleAddCafe(ctx *gin.Context) {
	var f form.AddCafeForm
	if err := ctx.ShouldBind(&f); err != nil {
		h.renderAddCafe(ctx, &f, map[string]string{"form": err.Error()})

		return
	}

	if err := f.Validate(); err != nil {
		h.renderAddCafe(ctx, &f, fieldErrors(err))

		return
	}

	_, err := h.svc.AddCafe(ctx.Request.Context(), f.ToCafe())
	if err != nil {
		if errors.Is(err, service.ErrCafeNameExists) {
			h.renderAddCafe(ctx, &f, map[string]string{"name": service.ErrCafeNameExists.Error()})

			return
		}

		zap.L().Error("failed to add cafe", zap.Error(err))
		addFlash(ctx, flashDanger, fmt.Sprintf("Failed to add %v: %v", f.Name, err))
		h.renderAddCafe(ctx, &f, nil)

		return
	}

	ctx.Redirect(http.StatusFound, "/cafes")
}

func (h *CafeHandler) HandleShowUpdateCafe(ctx *gin.Context) {
	id, ok := h.cafeID(ctx)
	if !ok {
		return
	}

	cafe, err := h.svc.GetCafe(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			h.renderNotFound(ctx)

			return
		}

		h.renderInternalError(ctx, fmt.Errorf("web.HandleShowUpdateCafe -> h.svc.GetCafe -> %w", err))

		return
	}

	f := form.UpdateFormFromCafe(cafe)
	h.renderUpdateCafe(ctx, id, &f, nil)
}

func (h *CafeHandler) HandleUpdateCafe(ctx *gin.Context) {
	id, ok := h.cafeID(ctx)
	if !ok {
		return
	}

	var f form.UpdateCafeForm
	if err := ctx.ShouldBind(&f); err != nil {
		h.renderUpdateCafe(ctx, id, &f, map[string]string{"form": err.Error()})

		return
	}

	if err := f.Validate(); err != nil {
		h.renderUpdateCafe(ctx, id, &f, fieldErrors(err))

		return
	}

	cafe := f.ToCafe()
	cafe.ID = id

	updated, err := h.svc.UpdateCafe(ctx.Request.Context(), cafe)
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			h.renderNotFound(ctx)

			return
		}

		// The write was rolled back. Show the failure as a notice and
		// redisplay the form hydrated from the persisted record, not
		// from the rejected input.
		zap.L().Error("failed to update cafe", zap.Uint("id", id), zap.Error(err))
		addFlash(ctx, flashDanger, fmt.Sprintf("Failed to update %v's information: %v", f.Name, err))

		current, ferr := h.svc.GetCafe(ctx.Request.Context(), id)
		if ferr != nil {
			h.renderUpdateCafe(ctx, id, &f, nil)

			return
		}

		hydrated := form.UpdateFormFromCafe(current)
		h.renderUpdateCafe(ctx, id, &hydrated, nil)

		return
	}

	addFlash(ctx, flashSuccess, fmt.Sprintf("%v's information updated successfully!!!", updated.Name))
	ctx.Redirect(http.StatusFound, "/cafes")
}

// HandleReportClosed serves the shared delete/report endpoint: a
// matching admin key deletes the row outright, otherwise a valid
// closure report is mailed to the admin. Neither branch taken renders
// both forms on one page.
func (h *CafeHandler) HandleReportClosed(ctx *gin.Context) {
	id, ok := h.cafeID(ctx)
	if !ok {
		return
	}

	submitted := ctx.Request.Method != http.MethodGet

	var df form.DeleteCafeForm
	var rf form.ReportClosedForm
	if submitted {
		if err := ctx.ShouldBind(&df); err != nil {
			h.renderReportClosed(ctx, id, &rf, map[string]string{"form": err.Error()})

			return
		}
		if err := ctx.ShouldBind(&rf); err != nil {
			h.renderReportClosed(ctx, id, &rf, map[string]string{"form": err.Error()})

			return
		}
	}

	if submitted && df.APIKey != "" && df.APIKey == h.conf.AdminAPIKey {
		h.deleteCafe(ctx, id)

		return
	}

	if submitted && rf.Validate() == nil {
		h.reportClosure(ctx, id, &rf)

		return
	}

	var formErrors map[string]string
	if submitted {
		formErrors = fieldErrors(rf.Validate())
	}

	h.renderReportClosed(ctx, id, &rf, formErrors)
}

func (h *CafeHandler) deleteCafe(ctx *gin.Context, id uint) {
	cafe, err := h.svc.GetCafe(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			h.renderNotFound(ctx)

			return
		}

		h.renderInternalError(ctx, fmt.Errorf("web.HandleReportClosed -> h.svc.GetCafe -> %w", err))

		return
	}

	if err = h.svc.DeleteCafe(ctx.Request.Context(), id); err != nil {
		h.renderInternalError(ctx, fmt.Errorf("web.HandleReportClosed -> h.svc.DeleteCafe -> %w", err))

		return
	}

	addFlash(ctx, flashSuccess, fmt.Sprintf("%v has been deleted!!", cafe.Name))
	ctx.Redirect(http.StatusFound, "/cafes")
}

func (h *CafeHandler) reportClosure(ctx *gin.Context, id uint, rf *form.ReportClosedForm) {
	cafe, err := h.svc.ReportClosure(ctx.Request.Context(), id, rf.Sender, rf.Message)
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			h.renderNotFound(ctx)

			return
		}

		// Dispatch failure still redirects; the report is lost but the
		// request is not a failure.
		zap.L().Warn("failed to dispatch closure report", zap.Uint("id", id), zap.Error(err))
		addFlash(ctx, flashDanger, fmt.Sprintf("Failed to send email: %v", err))
		ctx.Redirect(http.StatusFound, "/cafes")

		return
	}

	addFlash(ctx, flashSuccess, fmt.Sprintf("Closed report of %v has been sent to site admin successfully!!", cafe.Name))
	ctx.Redirect(http.StatusFound, "/cafes")
}

func (h *CafeHandler) renderAddCafe(ctx *gin.Context, f *form.AddCafeForm, formErrors map[string]string) {
	if formErrors == nil {
		formErrors = map[string]string{}
	}

	ctx.HTML(http.StatusOK, "add.html", gin.H{
		"Form":      f,
		"Errors":    formErrors,
		"CSRFToken": csrf.GetToken(ctx),
		"Flashes":   takeFlashes(ctx),
	})
}

func (h *CafeHandler) renderUpdateCafe(ctx *gin.Context, id uint, f *form.UpdateCafeForm, formErrors map[string]string) {
	if formErrors == nil {
		formErrors = map[string]string{}
	}

	ctx.HTML(http.StatusOK, "edit.html", gin.H{
		"CafeID":    id,
		"Form":      f,
		"Errors":    formErrors,
		"CSRFToken": csrf.GetToken(ctx),
		"Flashes":   takeFlashes(ctx),
	})
}

func (h *CafeHandler) renderReportClosed(ctx *gin.Context, id uint, rf *form.ReportClosedForm, formErrors map[string]string) {
	if formErrors == nil {
		formErrors = map[string]string{}
	}

	ctx.HTML(http.StatusOK, "report.html", gin.H{
		"CafeID":    id,
		"Form":      rf,
		"Errors":    formErrors,
		"CSRFToken": csrf.GetToken(ctx),
		"Flashes":   takeFlashes(ctx),
	})
}

func (h *CafeHandler) renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "404.html", gin.H{})
}

func (h *CafeHandler) renderInternalError(ctx *gin.Context, err error) {
	zap.L().Error("internal server error", zap.Error(err))
	ctx.String(http.StatusInternalServerError, "internal server error")
}

func (h *CafeHandler) cafeID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("cafeID"), 10, 32)
	if err != nil {
		h.renderNotFound(ctx)

		return 0, false
	}

	return uint(id), true
}

// fieldErrors flattens ozzo's per-field error map for the templates.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	fields := map[string]string{}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for name, ferr := range verrs {
			fields[name] = ferr.Error()
		}

		return fields
	}

	fields["form"] = err.Error()

	return fields
}

func addFlash(ctx *gin.Context, level, message string) {
	session := sessions.Default(ctx)
	session.AddFlash(message, level)
	if err := session.Save(); err != nil {
		zap.L().Warn("failed to save session", zap.Error(err))
	}
}

// takeFlashes drains the pending notices for both levels. Reading
// flashes removes them; Save persists the removal.
func takeFlashes(ctx *gin.Context) map[string][]string {
	session := sessions.Default(ctx)

	flashes := map[string][]string{}
	for _, level := range []string{flashSuccess, flashDanger} {
		for _, f := range session.Flashes(level) {
			if msg, ok := f.(string); ok {
				flashes[level] = append(flashes[level], msg)
			}
		}
	}

	if err := session.Save(); err != nil {
		zap.L().Warn("failed to save session", zap.Error(err))
	}

	return flashes
}
