// README: Ride handlers for create/list/get/update/delete.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"getdriven/internal/http/middleware"
	"getdriven/internal/modules/ride"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(rides *ride.Service) *RideHandler {
	return &RideHandler{rides: rides}
}

func (h *RideHandler) Create(c *gin.Context) {
	var in ride.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.rides.Create(c.Request.Context(), middleware.CallerID(c), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RideHandler) List(c *gin.Context) {
	rides, err := h.rides.List(c.Request.Context(), middleware.CallerID(c), c.Query("month"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rides)
}

func (h *RideHandler) Get(c *gin.Context) {
	r, err := h.rides.Get(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *RideHandler) Update(c *gin.Context) {
	var in ride.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.rides.Update(c.Request.Context(), c.Param("id"), middleware.CallerID(c), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *RideHandler) Delete(c *gin.Context) {
	err := h.rides.Delete(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "Rit verwijderd"})
}
