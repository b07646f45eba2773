package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gatekeeper/api/middleware"
	"gatekeeper/internal/dto"
	"gatekeeper/internal/feed"
	"gatekeeper/internal/service"

	"github.com/labstack/echo/v4"
)

type AppHandler struct {
	App *service.AppService
	Hub *feed.Hub
}

func NewAppHandler(app *service.AppService, hub *feed.Hub) *AppHandler {
	return &AppHandler{App: app, Hub: hub}
}

// State evaluates the lifecycle machine for the caller. Always re-reads the
// stores, so an admin decision or a maintenance toggle is visible on the next
// call without a new login.
func (h *AppHandler) State(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	snapshot, err := h.App.EvaluateForUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.StateResponseFrom(snapshot))
}

func (h *AppHandler) ListMessages(c echo.Context) error {
	limit, _ := parseLimitOffset(c)
	messages, err := h.App.ListMessages(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponsesFromEntities(messages))
}

// StreamMessages pushes broadcasts to the client over server-sent events.
// One subscription per connected client, released when the client goes away.
func (h *AppHandler) StreamMessages(c echo.Context) error {
	if _, ok := middleware.UserIDFromContext(c); !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-store")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	sub := h.Hub.Subscribe()
	defer sub.Close()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-sub.C:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(dto.MessageResponseFromEntity(&message))
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(response, "id: %s\nevent: broadcast\ndata: %s\n\n", message.ID, payload); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}
