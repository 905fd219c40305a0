package controller

import (
	"errors"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/serverutils"
	"support-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	LookupStatus(ctx *fiber.Ctx) error
	LoadDocument(ctx *fiber.Ctx) error
	GetCategoryInformation(ctx *fiber.Ctx) error
	GetStats(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Post("send-chat", c.SendChat)
	h.Get("sessions/:id/history", c.GetChatHistory)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Get("status/:identifier", c.LookupStatus)
	h.Post("document", c.LoadDocument)
	h.Get("categories/:category", c.GetCategoryInformation)
	h.Get("stats", c.GetStats)
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendChat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) GetChatHistory(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.GetChatHistory(ctx.UserContext(), sessionId)
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Chat session not found"))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	err = c.chatbotService.DeleteSession(ctx.UserContext(), sessionId)
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Chat session not found"))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}

func (c *chatbotController) LookupStatus(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.LookupStatus(ctx.UserContext(), ctx.Params("identifier"))
	if errors.Is(err, service.ErrNoIdentifier) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Identifier must contain digits"))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lookup status", res))
}

func (c *chatbotController) LoadDocument(ctx *fiber.Ctx) error {
	var req dto.LoadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.LoadDocument(ctx.UserContext(), &req)
	if errors.Is(err, service.ErrEmptyDocument) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Document content is empty"))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load document", res))
}

func (c *chatbotController) GetCategoryInformation(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetCategoryInformation(ctx.UserContext(), ctx.Params("category"))
	if errors.Is(err, service.ErrUnknownCategory) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unknown category"))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get category information", res))
}

func (c *chatbotController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}

func parseSessionId(ctx *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id.String(), nil
}
