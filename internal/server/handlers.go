package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/m1kezera/ai-faq-widget/internal/ask"
	"github.com/m1kezera/ai-faq-widget/internal/docs"
	"github.com/m1kezera/ai-faq-widget/internal/leads"
	"github.com/m1kezera/ai-faq-widget/internal/ollama"
	"github.com/m1kezera/ai-faq-widget/internal/sites"
)

type Handlers struct {
	Ask   *ask.Service
	Docs  *docs.Service
	Leads *leads.Service
	Sites *sites.Service
}

func (h *Handlers) AskQuestion(c *gin.Context) {
	var body struct {
		Question string `json:"question"`
	}
	// a missing or malformed body falls through as a blank question
	_ = c.ShouldBindJSON(&body)

	key := siteKey(c)
	ctx := c.Request.Context()

	// validate before any store or quota I/O
	if strings.TrimSpace(body.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question in request body"})
		return
	}

	if err := h.Sites.ConsumeQuota(ctx, key); err != nil {
		if errors.Is(err, sites.ErrQuotaExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Monthly quota exceeded"})
			return
		}
		log.Error().Err(err).Msg("Quota check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	res, err := h.Ask.Answer(ctx, key, body.Question)
	if err != nil {
		var validation *ask.ValidationError
		var upstream *ollama.StatusError
		switch {
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
		case errors.Is(err, ask.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "No documents found for this siteKey"})
		case errors.As(err, &upstream):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Failed to reach Ollama",
				"status":  upstream.Status,
				"message": upstream.Body,
			})
		default:
			log.Error().Err(err).Msg("Answer pipeline failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) UploadDocs(c *gin.Context) {
	key := siteKey(c)
	ctx := c.Request.Context()

	var inserted int
	var err error

	if file, fileErr := c.FormFile("file"); fileErr == nil {
		tmp := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, tmp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer os.Remove(tmp)
		inserted, err = h.Docs.SaveFile(ctx, key, tmp)
	} else {
		var body struct {
			Text string `json:"text"`
		}
		_ = c.ShouldBindJSON(&body)
		inserted, err = h.Docs.SaveText(ctx, key, body.Text)
	}

	if err != nil {
		var validation *ask.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
			return
		}
		log.Error().Err(err).Msg("Doc upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chunks saved", "inserted": inserted})
}

func (h *Handlers) RegisterSite(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
		Plan string `json:"plan"`
	}
	_ = c.ShouldBindJSON(&body)

	site, err := h.Sites.Register(c.Request.Context(), body.Name, body.Plan)
	if err != nil {
		log.Error().Err(err).Msg("Site registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"siteKey":      site.SiteKey,
		"name":         site.Name,
		"plan":         site.Plan,
		"monthlyQuota": site.MonthlyQuota,
	})
}

func (h *Handlers) CreateLead(c *gin.Context) {
	var body leads.CreateLead
	_ = c.ShouldBindJSON(&body)

	id, err := h.Leads.Create(c.Request.Context(), siteKey(c), body)
	if err != nil {
		log.Error().Err(err).Msg("Lead creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func (h *Handlers) ListLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	result, err := h.Leads.List(c.Request.Context(), siteKey(c), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Lead listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) ExportLeads(c *gin.Context) {
	csv, err := h.Leads.ExportCSV(c.Request.Context(), siteKey(c))
	if err != nil {
		log.Error().Err(err).Msg("Lead export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leads_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
