package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"secretsanta/internal/delivery/http/controllers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Group       *controllers.GroupController
	Participant *controllers.ParticipantController
	Assignment  *controllers.AssignmentController
	Health      *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Organizer routes require a Bearer token; the assignment view and health check are public.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Groups
	mux.HandleFunc("GET /groups", auth(c.Group.ListGroups))
	mux.HandleFunc("POST /groups", auth(c.Group.CreateGroup))
	mux.HandleFunc("GET /groups/{groupID}", auth(c.Group.GetGroup))
	mux.HandleFunc("PATCH /groups/{groupID}", auth(c.Group.UpdateGroup))
	mux.HandleFunc("DELETE /groups/{groupID}", auth(c.Group.DeleteGroup))

	// Participants
	mux.HandleFunc("POST /groups/{groupID}/participants", auth(c.Participant.AddParticipant))
	mux.HandleFunc("DELETE /groups/{groupID}/participants/{participantID}", auth(c.Participant.RemoveParticipant))

	// Draw and notifications
	mux.HandleFunc("POST /groups/{groupID}/randomize", auth(c.Assignment.Randomize))
	mux.HandleFunc("POST /groups/{groupID}/resend", auth(c.Assignment.ResendAll))
	mux.HandleFunc("POST /groups/{groupID}/participants/{participantID}/resend", auth(c.Assignment.ResendOne))

	// Public
	mux.HandleFunc("GET /assignments/{token}", c.Assignment.GetAssignmentByToken)
	mux.HandleFunc("GET /healthz", c.Health.Healthz)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with CORS and request logging.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
