package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"
)

// DefaultMaxUploadBytes bounds gallery uploads.
const DefaultMaxUploadBytes = 10 << 20

// StatRequest is the request body for creating or replacing a stat.
type StatRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon" example:"Users"`
}

// TestimonialRequest is the request body for creating or replacing a testimonial.
type TestimonialRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Quote        string `json:"quote"`
}

type ContentController struct {
	Logger         *slog.Logger
	Service        domain.ContentService
	MaxUploadBytes int64
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// ListGallery godoc
// @Summary List gallery items
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is a list of gallery items"
// @Router /api/gallery [get]
func (c *ContentController) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.ListGallery(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "gallery not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// UploadGalleryItem godoc
// @Summary Upload a gallery image
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image (jpg, png, webp, gif)"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} helpers.APIResponse "data is the created gallery item"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /api/gallery [post]
func (c *ContentController) UploadGalleryItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	if err := r.ParseMultipartForm(c.MaxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	item, err := c.Service.UploadGalleryItem(r.Context(), header.Filename, file, r.FormValue("title"), r.FormValue("description"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "gallery item not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// DeleteGalleryItem godoc
// @Summary Delete a gallery item and its image
// @Tags content
// @Security BearerAuth
// @Param id path string true "Gallery item ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/gallery/{id} [delete]
func (c *ContentController) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, "gallery item not found", c.Service.DeleteGalleryItem)
}

// ListStats godoc
// @Summary List headline stats
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is a list of stats"
// @Router /api/stats [get]
func (c *ContentController) ListStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.ListStats(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "stats not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// CreateStat godoc
// @Summary Create a stat
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stat body StatRequest true "Stat"
// @Success 201 {object} helpers.APIResponse "data is the created stat"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /api/stats [post]
func (c *ContentController) CreateStat(w http.ResponseWriter, r *http.Request) {
	var req StatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	stat := &domain.Stat{Label: req.Label, Value: req.Value, Icon: domain.StatIcon(req.Icon)}
	if err := c.Service.CreateStat(r.Context(), stat); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "stat not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, stat)
}

// UpdateStat godoc
// @Summary Replace a stat
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Stat ID"
// @Param stat body StatRequest true "Stat"
// @Success 200 {object} helpers.APIResponse "data is the updated stat"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/stats/{id} [put]
func (c *ContentController) UpdateStat(w http.ResponseWriter, r *http.Request) {
	var req StatRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	stat := &domain.Stat{ID: r.PathValue("id"), Label: req.Label, Value: req.Value, Icon: domain.StatIcon(req.Icon)}
	if err := c.Service.UpdateStat(r.Context(), stat); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "stat not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stat)
}

// DeleteStat godoc
// @Summary Delete a stat
// @Tags content
// @Security BearerAuth
// @Param id path string true "Stat ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/stats/{id} [delete]
func (c *ContentController) DeleteStat(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, "stat not found", c.Service.DeleteStat)
}

// ListTestimonials godoc
// @Summary List testimonials
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is a list of testimonials"
// @Router /api/testimonials [get]
func (c *ContentController) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListTestimonials(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "testimonials not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateTestimonial godoc
// @Summary Create a testimonial
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testimonial body TestimonialRequest true "Testimonial"
// @Success 201 {object} helpers.APIResponse "data is the created testimonial"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /api/testimonials [post]
func (c *ContentController) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	t := req.toDomain("")
	if err := c.Service.CreateTestimonial(r.Context(), t); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "testimonial not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, t)
}

// UpdateTestimonial godoc
// @Summary Replace a testimonial
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param testimonial body TestimonialRequest true "Testimonial"
// @Success 200 {object} helpers.APIResponse "data is the updated testimonial"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/testimonials/{id} [put]
func (c *ContentController) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	t := req.toDomain(r.PathValue("id"))
	if err := c.Service.UpdateTestimonial(r.Context(), t); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "testimonial not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, t)
}

// DeleteTestimonial godoc
// @Summary Delete a testimonial
// @Tags content
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/testimonials/{id} [delete]
func (c *ContentController) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, "testimonial not found", c.Service.DeleteTestimonial)
}

func (t TestimonialRequest) toDomain(id string) *domain.Testimonial {
	return &domain.Testimonial{ID: id, Name: t.Name, Role: t.Role, Organization: t.Organization, Quote: t.Quote}
}

func (c *ContentController) deleteByID(w http.ResponseWriter, r *http.Request, notFound string, del func(ctx context.Context, id string) error) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := del(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, notFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
