package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucasfdcampos/dealer-api/internal/cache"
	"github.com/lucasfdcampos/dealer-api/internal/config"
	"github.com/lucasfdcampos/dealer-api/internal/domain"
	"github.com/lucasfdcampos/dealer-api/internal/enrich"
	"github.com/lucasfdcampos/dealer-api/internal/locale"
	"github.com/lucasfdcampos/dealer-api/internal/pipeline"
)

// Handler holds the HTTP dependencies.
type Handler struct {
	cfg      *config.Config
	deps     pipeline.Deps
	enricher *enrich.Enricher
}

// NewHandler creates a new Handler.
func NewHandler(cfg *config.Config, deps pipeline.Deps, enricher *enrich.Enricher) *Handler {
	return &Handler{cfg: cfg, deps: deps, enricher: enricher}
}

// errResponse writes the standard error envelope.
func errResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "message": msg})
}

// Health godoc
//
//	GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

// Leads godoc
//
//	GET /api/leads  (legacy alias: GET /leads)
//
//	Query params: q|keyword (required), country, limit|num, start, mode, lang, enrich
func (h *Handler) Leads(c *gin.Context) {
	req := parseSearchRequest(c)
	if req.Keyword == "" {
		errResponse(c, http.StatusBadRequest, "q/keyword is required")
		return
	}
	if !h.cfg.HasSearchCredentials() {
		errResponse(c, http.StatusInternalServerError, "missing Google API configuration")
		return
	}

	resp, err := pipeline.Run(c.Request.Context(), req, h.deps)
	if err != nil {
		errResponse(c, http.StatusInternalServerError, "search failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Enrich godoc
//
//	GET /enrich
//
//	Query params: website (required), lang (default "en"), country
func (h *Handler) Enrich(c *gin.Context) {
	website := strings.TrimSpace(c.Query("website"))
	if website == "" {
		errResponse(c, http.StatusBadRequest, "website is required")
		return
	}
	country := strings.TrimSpace(c.Query("country"))
	langParam := strings.ToLower(c.DefaultQuery("lang", "en"))
	lang := locale.Resolve(country, langParam)

	res, err := h.enricher.Single(c.Request.Context(), website, lang, country)
	if err != nil {
		errResponse(c, http.StatusInternalServerError, "enrich failed: "+err.Error())
		return
	}

	// result plus flattened fields, for older clients
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"result":     res,
		"email":      res.Email,
		"phone":      res.Phone,
		"emailScore": res.EmailScore,
		"phoneScore": res.PhoneScore,
	})
}

// InvalidateCache godoc
//
//	DELETE /api/leads/cache
//
//	Query params: same as GET /api/leads; removes that request's cache entry.
func (h *Handler) InvalidateCache(c *gin.Context) {
	if h.deps.Redis == nil {
		errResponse(c, http.StatusServiceUnavailable, "redis not configured")
		return
	}
	req := parseSearchRequest(c)
	if req.Keyword == "" {
		errResponse(c, http.StatusBadRequest, "q/keyword is required")
		return
	}

	key := cache.LeadsKey(req)
	if err := h.deps.Redis.DeleteLeads(c.Request.Context(), key); err != nil {
		errResponse(c, http.StatusInternalServerError, "failed to delete cache key: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "key": key})
}

// parseSearchRequest normalizes the /api/leads query parameters.
func parseSearchRequest(c *gin.Context) domain.SearchRequest {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		keyword = strings.TrimSpace(c.Query("keyword"))
	}

	limitRaw := c.Query("limit")
	if limitRaw == "" {
		limitRaw = c.Query("num")
	}

	return domain.SearchRequest{
		Keyword: keyword,
		Country: strings.TrimSpace(c.Query("country")),
		Mode:    strings.ToLower(c.DefaultQuery("mode", domain.ModeDealer)),
		Lang:    strings.ToLower(c.DefaultQuery("lang", "auto")),
		Limit:   clampLimit(limitRaw),
		Start:   clampStart(c.Query("start")),
		Enrich:  c.DefaultQuery("enrich", "0") == "1",
	}
}

// clampLimit parses the limit into [1,20]; non-numeric defaults to 10.
func clampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 10
	}
	if n < 1 {
		return 1
	}
	if n > 20 {
		return 20
	}
	return n
}

// clampStart parses the start offset; values below 1 mean "unset".
func clampStart(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
