package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"casebackend/internal/domain"
	"casebackend/internal/http/middleware"
	"casebackend/internal/services"

	"github.com/gin-gonic/gin"
)

// CaseHandler serves /api/cases.
type CaseHandler struct {
	Store    services.CaseStore
	MaxLimit int
}

func (h CaseHandler) service(c *gin.Context) services.CaseService {
	return services.CaseService{
		Store:     h.Store,
		MaxLimit:  h.MaxLimit,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/cases/vuetable
func (h CaseHandler) Vuetable(c *gin.Context) {
	result, err := h.service(c).Vuetable(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/cases
func (h CaseHandler) List(c *gin.Context) {
	page, err := h.service(c).Browse(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var next, previous *string
	if page.Offset < page.Count-page.Limit {
		link := pageLink(c, page.Limit, page.Offset+page.Limit)
		next = &link
	}
	if page.Offset > 0 {
		prev := page.Offset - page.Limit
		if prev < 0 {
			prev = 0
		}
		link := pageLink(c, page.Limit, prev)
		previous = &link
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    page.Count,
		"next":     next,
		"previous": previous,
		"results":  page.Results,
	})
}

// GET /api/cases/:id
func (h CaseHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c, "case")
	if !ok {
		return
	}
	cs, err := h.service(c).Retrieve(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ShapeCase(services.ActionRetrieve, cs))
}

// POST /api/cases
func (h CaseHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}

	var in services.CaseWrite
	if !BindJSONOrError(c, &in) {
		return
	}

	cs, err := h.service(c).Create(c.Request.Context(), in, user.Mobile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, services.ShapeCase(services.ActionCreate, cs))
}

// GET /api/cases/:id/pdf
func (h CaseHandler) SheetPDF(c *gin.Context) {
	id, ok := idParam(c, "case")
	if !ok {
		return
	}
	svc := services.CaseSheetService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Generate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func pageLink(c *gin.Context, limit, offset int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
