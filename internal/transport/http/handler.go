package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/service"
	httpmw "github.com/Sradha-maharana/video-conference-backend/internal/transport/http/middleware"
	"github.com/Sradha-maharana/video-conference-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	authSvc *service.AuthService
	roomSvc *service.RoomService
}

func NewHandler(auth *service.AuthService, room *service.RoomService) *Handler {
	return &Handler{authSvc: auth, roomSvc: room}
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	res, err := h.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrAlreadyExists):
			httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "user exists"})
		case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrPasswordTooShort):
			httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("handler.Register:", slog.Any("err", err))
			httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server error"})
		}
		return
	}

	httputil.JSON(w, http.StatusOK, toAuthResponse(res, int64(h.authSvc.AccessTTL().Seconds())))
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid credentials"})
			return
		}
		slog.Error("handler.Login:", slog.Any("err", err))
		httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server error"})
		return
	}

	httputil.JSON(w, http.StatusOK, toAuthResponse(res, int64(h.authSvc.AccessTTL().Seconds())))
}

// POST /api/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())
	if userID == 0 {
		httputil.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user id"})
		return
	}

	room, err := h.roomSvc.CreateRoom(r.Context(), userID)
	if err != nil {
		slog.Error("handler.CreateRoom:", slog.Any("err", err))
		httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error creating room"})
		return
	}

	httputil.JSON(w, http.StatusCreated, toRoomItem(room))
}

// GET /api/rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	room, err := h.roomSvc.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			httputil.JSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.GetRoom:", slog.Any("err", err))
		httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error fetching room"})
		return
	}

	httputil.JSON(w, http.StatusOK, toRoomItem(room))
}

func toAuthResponse(res *service.AuthResult, expiresIn int64) AuthResponse {
	return AuthResponse{
		Token:     res.AccessToken,
		ExpiresIn: expiresIn,
		User: UserItem{
			ID:    int64(res.User.ID),
			Name:  res.User.Name,
			Email: res.User.Email,
		},
	}
}

func toRoomItem(room *domain.Room) RoomItem {
	return RoomItem{
		ID:           room.ID,
		HostID:       room.HostID,
		Participants: room.Participants,
		CreatedAt:    room.CreatedAt,
	}
}
