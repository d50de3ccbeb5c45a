package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"butce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	portfolio *service.Portfolio
	log       *logrus.Logger
}

func NewHandler(p *service.Portfolio, log *logrus.Logger) *Handler {
	return &Handler{portfolio: p, log: log}
}

// Register installs the page template and every holdings route on rg.
func (h *Handler) Register(rg *gin.Engine) error {
	tmpl, err := h.templates()
	if err != nil {
		return err
	}
	rg.SetHTMLTemplate(tmpl)

	rg.GET("/", h.Index)
	rg.POST("/holdings", h.PostHolding)
	rg.POST("/holdings/delete", h.DeleteHolding)

	api := rg.Group("/api")
	api.GET("/holdings", h.GetHoldings)
	api.POST("/holdings", h.CreateHolding)
	// names such as "USD/TRY" contain slashes
	api.DELETE("/holdings/*name", h.RemoveHolding)
	return nil
}

func (h *Handler) templates() (*template.Template, error) {
	cur := h.portfolio.Currency()
	funcs := template.FuncMap{
		"money":  func(v float64) string { return service.FormatMoney(v, cur) },
		"number": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"percent": func(v float64) string {
			return "%" + strconv.FormatFloat(v*100, 'f', 1, 64)
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func (h *Handler) Index(c *gin.Context) {
	view := h.portfolio.View(c.Request.Context())
	c.HTML(http.StatusOK, "index.html", gin.H{"View": view, "Error": c.Query("error")})
}

func (h *Handler) PostHolding(c *gin.Context) {
	var req service.AddRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("invalid holding form: %v", err)
		redirectWithError(c, "Tür ve isim zorunludur.")
		return
	}
	if _, err := h.portfolio.Add(c.Request.Context(), req); err != nil {
		h.log.Warnf("add holding failed: %v", err)
		redirectWithError(c, userMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) DeleteHolding(c *gin.Context) {
	name := c.PostForm("name")
	if _, _, err := h.portfolio.Delete(c.Request.Context(), name); err != nil {
		h.log.Errorf("delete holding failed: %v", err)
		redirectWithError(c, userMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) GetHoldings(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.View(c.Request.Context()))
}

func (h *Handler) CreateHolding(c *gin.Context) {
	var req service.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid post body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.portfolio.Add(c.Request.Context(), req)
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf("add holding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add failed"})
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) RemoveHolding(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	view, deleted, err := h.portfolio.Delete(c.Request.Context(), name)
	if err != nil {
		h.log.Errorf("delete holding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "view": view})
}

func isValidation(err error) bool {
	return errors.Is(err, service.ErrEmptyName) || errors.Is(err, service.ErrUnknownAssetType)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		return "İsim boş olamaz."
	case errors.Is(err, service.ErrUnknownAssetType):
		return "Geçersiz varlık türü."
	}
	return "İşlem başarısız oldu, lütfen tekrar deneyin."
}

func redirectWithError(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(msg))
}
