package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

// ToggleLike handles /likes/toggle/{kind}/{targetId} for videos (v),
// comments (c) and tweets (t).
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	kind, err := models.ParseLikeKind(mux.Vars(r)["kind"])
	if err != nil {
		respondError(w, r, apperr.New(apperr.InvalidInput, "Unknown like target"))
		return
	}
	targetID, err := pathID(r, "targetId", string(kind))
	if err != nil {
		respondError(w, r, err)
		return
	}

	like, err := h.store.ToggleLike(r.Context(), caller.UserID, models.LikeTarget{Kind: kind, ID: targetID})
	if err != nil {
		respondError(w, r, err)
		return
	}
	if like == nil {
		respondJSON(w, http.StatusOK, struct{}{}, fmt.Sprintf("%s like removed successfully", kind))
		return
	}
	respondJSON(w, http.StatusOK, like, fmt.Sprintf("%s liked successfully", kind))
}

// GetLikedVideos lists the videos the caller liked.
func (h *Handlers) GetLikedVideos(w http.ResponseWriter, r *http.Request) {
	caller, err := requireCaller(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	videos, err := h.store.LikedVideos(r.Context(), caller.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, videos, "Liked videos fetched successfully")
}
