// Package http exposes the application over a REST API built on echo.
// Handlers translate requests into commands and queries, never touching
// domain aggregates directly; acting identities always come from the access
// token, not from request bodies.
package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP API by coordinating between echo handlers and
// application use cases.
type Server struct {
	registerSellerHandler  commands.RegisterSellerCommandHandler
	registerPartnerHandler commands.RegisterPartnerCommandHandler
	verifyAccountHandler   commands.VerifyAccountCommandHandler
	loginHandler           commands.LoginCommandHandler
	createShipmentHandler  commands.CreateShipmentCommandHandler
	updateShipmentHandler  commands.UpdateShipmentCommandHandler
	cancelShipmentHandler  commands.CancelShipmentCommandHandler
	addTagHandler          commands.AddShipmentTagCommandHandler
	removeTagHandler       commands.RemoveShipmentTagCommandHandler
	submitReviewHandler    commands.SubmitReviewCommandHandler

	trackShipmentHandler    queries.TrackShipmentQueryHandler
	sellerShipmentsHandler  queries.GetSellerShipmentsQueryHandler
	partnerShipmentsHandler queries.GetPartnerShipmentsQueryHandler

	tokens ports.TokenCodec
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	registerSellerHandler commands.RegisterSellerCommandHandler,
	registerPartnerHandler commands.RegisterPartnerCommandHandler,
	verifyAccountHandler commands.VerifyAccountCommandHandler,
	loginHandler commands.LoginCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateShipmentHandler commands.UpdateShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	addTagHandler commands.AddShipmentTagCommandHandler,
	removeTagHandler commands.RemoveShipmentTagCommandHandler,
	submitReviewHandler commands.SubmitReviewCommandHandler,
	trackShipmentHandler queries.TrackShipmentQueryHandler,
	sellerShipmentsHandler queries.GetSellerShipmentsQueryHandler,
	partnerShipmentsHandler queries.GetPartnerShipmentsQueryHandler,
	tokens ports.TokenCodec,
) *Server {
	return &Server{
		registerSellerHandler:   registerSellerHandler,
		registerPartnerHandler:  registerPartnerHandler,
		verifyAccountHandler:    verifyAccountHandler,
		loginHandler:            loginHandler,
		createShipmentHandler:   createShipmentHandler,
		updateShipmentHandler:   updateShipmentHandler,
		cancelShipmentHandler:   cancelShipmentHandler,
		addTagHandler:           addTagHandler,
		removeTagHandler:        removeTagHandler,
		submitReviewHandler:     submitReviewHandler,
		trackShipmentHandler:    trackShipmentHandler,
		sellerShipmentsHandler:  sellerShipmentsHandler,
		partnerShipmentsHandler: partnerShipmentsHandler,
		tokens:                  tokens,
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/openapi.json", s.OpenAPISpec)

	api := e.Group("/api")
	api.POST("/accounts/sellers", s.RegisterSeller)
	api.POST("/accounts/partners", s.RegisterPartner)
	api.GET("/accounts/verify", s.VerifyAccount)
	api.POST("/accounts/login", s.Login)
	api.GET("/shipments/:id/track", s.TrackShipment)
	api.POST("/reviews", s.SubmitReview)

	authed := api.Group("", requireAuth(s.tokens))
	authed.POST("/shipments", s.CreateShipment)
	authed.GET("/shipments", s.ListShipments)
	authed.PATCH("/shipments/:id", s.UpdateShipment)
	authed.POST("/shipments/:id/cancel", s.CancelShipment)
	authed.POST("/shipments/:id/tags", s.AddShipmentTag)
	authed.DELETE("/shipments/:id/tags/:tag", s.RemoveShipmentTag)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterSeller handles POST /api/accounts/sellers.
func (s *Server) RegisterSeller(ctx echo.Context) error {
	var request registerSellerRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	// The address is optional; a seller without one gets the unknown-location
	// sentinel as the origin of its shipments.
	var zipcode kernel.Zipcode
	if request.Zipcode != "" {
		parsed, err := kernel.NewZipcode(request.Zipcode)
		if err != nil {
			return respondError(ctx, err)
		}
		zipcode = parsed
	}

	sellerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterSellerCommand(
		sellerID, request.Name, string(request.Email), request.Password, zipcode,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerSellerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registeredResponse{ID: sellerID.String()})
}

// RegisterPartner handles POST /api/accounts/partners.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var request registerPartnerRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	zipcodes := make([]kernel.Zipcode, 0, len(request.ServiceableZipcodes))
	for _, code := range request.ServiceableZipcodes {
		zipcode, err := kernel.NewZipcode(code)
		if err != nil {
			return respondError(ctx, err)
		}
		zipcodes = append(zipcodes, zipcode)
	}

	partnerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartnerCommand(
		partnerID, request.Name, string(request.Email), request.Password,
		zipcodes, request.MaxCapacity,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registeredResponse{ID: partnerID.String()})
}

// VerifyAccount handles GET /api/accounts/verify.
func (s *Server) VerifyAccount(ctx echo.Context) error {
	cmd, err := commands.NewVerifyAccountCommand(ctx.QueryParam("token"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.verifyAccountHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Login handles POST /api/accounts/login.
func (s *Server) Login(ctx echo.Context) error {
	var request loginRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	role, err := account.RoleFromString(request.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewLoginCommand(string(request.Email), request.Password, role)
	if err != nil {
		return respondError(ctx, err)
	}

	token, err := s.loginHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

// CreateShipment handles POST /api/shipments. Seller only.
func (s *Server) CreateShipment(ctx echo.Context) error {
	sellerID, ok := actingSeller(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RoleSeller)
	}

	var request createShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	destination, err := kernel.NewZipcode(request.Destination)
	if err != nil {
		return respondError(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, sellerID, request.Content, request.Weight,
		destination, string(request.CustomerEmail), request.CustomerPhone,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registeredResponse{ID: shipmentID.String()})
}

// ListShipments handles GET /api/shipments. Sellers get the shipments they
// created; partners get their assigned shipments, restricted to undelivered
// ones with ?active=true.
func (s *Server) ListShipments(ctx echo.Context) error {
	requestCtx := ctx.Request().Context()

	if sellerID, ok := actingSeller(ctx); ok {
		query, err := queries.NewGetSellerShipmentsQuery(sellerID)
		if err != nil {
			return respondError(ctx, err)
		}

		summaries, err := s.sellerShipmentsHandler.Handle(requestCtx, query)
		if err != nil {
			return respondError(ctx, err)
		}

		return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
	}

	partnerID, ok := actingPartner(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RoleSeller)
	}

	query, err := queries.NewGetPartnerShipmentsQuery(partnerID, ctx.QueryParam("active") == "true")
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.partnerShipmentsHandler.Handle(requestCtx, query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// TrackShipment handles GET /api/shipments/:id/track. Public.
func (s *Server) TrackShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid shipment id")
	}

	query, err := queries.NewTrackShipmentQuery(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.trackShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackResponse(result))
}

// UpdateShipment handles PATCH /api/shipments/:id. Partner only.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	partnerID, ok := actingPartner(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RolePartner)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid shipment id")
	}

	var request updateShipmentRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	var status *shipment.Status
	if request.Status != nil {
		parsed, statusErr := shipment.StatusFromString(*request.Status)
		if statusErr != nil {
			return respondError(ctx, statusErr)
		}
		status = &parsed
	}

	var location *kernel.Zipcode
	if request.Location != nil {
		parsed, locationErr := kernel.NewZipcode(*request.Location)
		if locationErr != nil {
			return respondError(ctx, locationErr)
		}
		location = &parsed
	}

	cmd, err := commands.NewUpdateShipmentCommand(
		shipmentID, partnerID, location, status,
		request.Description, request.EstimatedDelivery, request.VerificationCode,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/shipments/:id/cancel. Seller only.
// The body is optional; a reason, when given, becomes the description of the
// cancelled event.
func (s *Server) CancelShipment(ctx echo.Context) error {
	sellerID, ok := actingSeller(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RoleSeller)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid shipment id")
	}

	var request cancelShipmentRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, sellerID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddShipmentTag handles POST /api/shipments/:id/tags. Seller only.
func (s *Server) AddShipmentTag(ctx echo.Context) error {
	sellerID, ok := actingSeller(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RoleSeller)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid shipment id")
	}

	var request addTagRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	tag, err := shipment.NewTagName(request.Tag)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddShipmentTagCommand(shipmentID, sellerID, tag)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addTagHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveShipmentTag handles DELETE /api/shipments/:id/tags/:tag. Seller only.
func (s *Server) RemoveShipmentTag(ctx echo.Context) error {
	sellerID, ok := actingSeller(ctx)
	if !ok {
		return respondWrongRole(ctx, account.RoleSeller)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "invalid shipment id")
	}

	tag, err := shipment.NewTagName(ctx.Param("tag"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveShipmentTagCommand(shipmentID, sellerID, tag)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.removeTagHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitReview handles POST /api/reviews. Public; authorization comes from
// the signed review token delivered with the delivery notification.
func (s *Server) SubmitReview(ctx echo.Context) error {
	var request submitReviewRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSubmitReviewCommand(
		ctx.QueryParam("token"), request.Rating, request.Comment,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.submitReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toSummaryResponses(summaries []queries.ShipmentSummaryResponse) []shipmentSummaryResponse {
	responses := make([]shipmentSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, shipmentSummaryResponse{
			ID:                summary.ShipmentID.String(),
			Content:           summary.Content,
			Destination:       summary.Destination,
			Status:            summary.Status,
			CreatedAt:         summary.CreatedAt,
			EstimatedDelivery: summary.EstimatedDelivery,
		})
	}

	return responses
}

func toTrackResponse(result queries.TrackShipmentQueryResponse) trackShipmentResponse {
	timeline := make([]timelineEntryResponse, 0, len(result.Timeline))
	for _, entry := range result.Timeline {
		timeline = append(timeline, timelineEntryResponse{
			Status:      entry.Status,
			Location:    entry.Location,
			Description: entry.Description,
			CreatedAt:   entry.CreatedAt,
		})
	}

	tags := make([]tagResponse, 0, len(result.Tags))
	for _, tag := range result.Tags {
		tags = append(tags, tagResponse{Name: tag.Name, Instruction: tag.Instruction})
	}

	var review *reviewResponse
	if result.Review != nil {
		review = &reviewResponse{
			Rating:    result.Review.Rating,
			Comment:   result.Review.Comment,
			CreatedAt: result.Review.CreatedAt,
		}
	}

	return trackShipmentResponse{
		ID:                result.ShipmentID.String(),
		Content:           result.Content,
		Destination:       result.Destination,
		Status:            result.Status,
		CreatedAt:         result.CreatedAt,
		EstimatedDelivery: result.EstimatedDelivery,
		Timeline:          timeline,
		Tags:              tags,
		Review:            review,
	}
}
