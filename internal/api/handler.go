package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/teamreg/backend/internal/model"
	"github.com/teamreg/backend/internal/service"
	"github.com/teamreg/backend/pkg/logger"
)

type Handler struct {
	registration *service.RegistrationService
	chat         *service.ChatService

	healthChecker HealthChecker

	uploadDir   string
	frontendURL string
	development bool

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithRegistrationService(s *service.RegistrationService) *Handler {
	h.registration = s
	return h
}

func (h *Handler) WithChatService(s *service.ChatService) *Handler {
	h.chat = s
	return h
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithUploadDir(dir string) *Handler {
	h.uploadDir = dir
	return h
}

func (h *Handler) WithFrontendURL(url string) *Handler {
	h.frontendURL = url
	return h
}

func (h *Handler) WithDevelopmentMode(dev bool) *Handler {
	h.development = dev
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{h.frontendURL},
		AllowCredentials: true,
	}))

	e.Static("/uploads", h.uploadDir)

	api := e.Group("/api")

	api.GET("/health", h.healthChecker.HealthCheck())

	api.POST("/register", h.RegisterTeam, middleware.BodyLimit("12M"))
	api.POST("/verify-recaptcha", h.VerifyRecaptcha)
	api.GET("/team/:teamId", h.GetTeam)
	api.POST("/chat", h.Chat)
}

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) RegisterTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sub := &model.Submission{
		TeamName:        e.FormValue("teamName"),
		TeamLeaderName:  e.FormValue("teamLeaderName"),
		TeamLeaderEmail: e.FormValue("teamLeaderEmail"),
		TeamMembers:     e.FormValue("teamMembers"),
		RecaptchaToken:  e.FormValue("recaptchaToken"),
	}

	// The upload guard runs before any registration logic.
	if file, err := e.FormFile("idCard"); err == nil {
		name, saveErr := saveUpload(file, h.uploadDir)
		if saveErr != nil {
			l.Warn("rejected id card upload", zap.String("filename", file.Filename), zap.Error(saveErr))
			return h.transportError(e, service.NewError(service.ErrorCodeInvalidUpload, saveErr.Error()))
		}
		sub.IDCardPath = name
	}

	l.Info("registering team", zap.String("team_name", sub.TeamName))

	reg, err := h.registration.Register(e.Request().Context(), sub)
	if err != nil {
		l.Error("failed to register team", zap.String("team_name", sub.TeamName), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, response{
		Success: true,
		Data:    reg.Public(),
		Message: "Team registered successfully! A confirmation email has been sent.",
	})
}

func (h *Handler) VerifyRecaptcha(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Token string `json:"token" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	verified, err := h.registration.VerifyToken(e.Request().Context(), req.Token)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, response{
		Success: true,
		Data:    map[string]bool{"verified": verified},
	})
}

func (h *Handler) GetTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("teamId")

	l.Info("getting team", zap.String("team_id", teamID))

	reg, err := h.registration.GetTeam(e.Request().Context(), teamID)
	if err != nil {
		l.Error("failed to get team", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, response{
		Success: true,
		Data:    reg.Public(),
	})
}

func (h *Handler) Chat(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Message string               `json:"message" validate:"required"`
		History []*model.ChatMessage `json:"history"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	reply, err := h.chat.Reply(e.Request().Context(), req.Message, req.History)
	if err != nil {
		l.Error("failed to get chat response", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, response{
		Success: true,
		Data: map[string]string{
			"message":   reply,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}

	if err := e.Validate(req); err != nil {
		msg := "invalid request body"
		if h.development {
			msg = err.Error()
		}
		return service.NewError(service.ErrorCodeInvalidBody, msg)
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	resp := response{
		Success: false,
		Error:   err.Message,
	}

	switch err.Code {
	case service.ErrorCodeInvalidBody, service.ErrorCodeCaptchaFailed, service.ErrorCodeInvalidUpload:
		return e.JSON(http.StatusBadRequest, resp)
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, resp)
	case service.ErrorCodeAlreadyExists:
		return e.JSON(http.StatusConflict, resp)
	default:
		if !h.development {
			resp.Error = "internal server error"
		}
		return e.JSON(http.StatusInternalServerError, resp)
	}
}
