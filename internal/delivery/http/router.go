package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"governanceevents/internal/delivery/http/controllers"
	"governanceevents/internal/delivery/http/middleware"
	"governanceevents/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Content       *controllers.ContentController
	Auth          *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a Bearer token accepted by verifier. Uploaded images are served from uploadDir.
func NewRouter(c Controllers, verifier domain.TokenVerifier, uploadDir string, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(verifier, logger)

	// Events
	mux.HandleFunc("GET /api/events", c.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("GET /api/events/{eventID}/calendar.ics", c.Events.DownloadCalendar)
	mux.HandleFunc("GET /api/events/{eventID}/calendar-link", c.Events.CalendarLink)
	mux.HandleFunc("POST /api/events", admin(c.Events.CreateEvent))
	mux.HandleFunc("POST /api/events/sync", admin(c.Events.SyncEvents))
	mux.HandleFunc("PUT /api/events/{eventID}", admin(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", admin(c.Events.DeleteEvent))

	// Registrations
	mux.HandleFunc("POST /api/events/{eventID}/registrations", c.Registrations.Submit)
	mux.HandleFunc("GET /api/registrations/{ref}", c.Registrations.GetByReference)
	mux.HandleFunc("POST /api/registrations/{ref}/payment", c.Registrations.ConfirmPayment)
	mux.HandleFunc("GET /api/registrations/{ref}/confirmation.pdf", c.Registrations.ConfirmationSlip)
	mux.HandleFunc("GET /api/registrations", admin(c.Registrations.List))
	mux.HandleFunc("GET /api/registrations/export.xlsx", admin(c.Registrations.Export))
	mux.HandleFunc("DELETE /api/registrations/{id}", admin(c.Registrations.Delete))

	// Content
	mux.HandleFunc("GET /api/gallery", c.Content.ListGallery)
	mux.HandleFunc("POST /api/gallery", admin(c.Content.UploadGalleryItem))
	mux.HandleFunc("DELETE /api/gallery/{id}", admin(c.Content.DeleteGalleryItem))
	mux.HandleFunc("GET /api/stats", c.Content.ListStats)
	mux.HandleFunc("POST /api/stats", admin(c.Content.CreateStat))
	mux.HandleFunc("PUT /api/stats/{id}", admin(c.Content.UpdateStat))
	mux.HandleFunc("DELETE /api/stats/{id}", admin(c.Content.DeleteStat))
	mux.HandleFunc("GET /api/testimonials", c.Content.ListTestimonials)
	mux.HandleFunc("POST /api/testimonials", admin(c.Content.CreateTestimonial))
	mux.HandleFunc("PUT /api/testimonials/{id}", admin(c.Content.UpdateTestimonial))
	mux.HandleFunc("DELETE /api/testimonials/{id}", admin(c.Content.DeleteTestimonial))

	// Auth
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)

	// Uploaded gallery images
	if uploadDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
