package handler

import (
	"net/http"
	"strconv"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/middleware"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/service"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/Khushi2755/academix/pkg/response"
	"github.com/Khushi2755/academix/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClubHandler struct {
	clubService service.ClubService
}

func NewClubHandler(clubService service.ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

// principal pulls the authenticated user attached by RequireAuth.
func principal(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized"))
	}
	return user, ok
}

func clubID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NotFound("Club not found"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ClubHandler) List(c *gin.Context) {
	clubs, err := h.clubService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) Search(c *gin.Context) {
	results, err := h.clubService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ClubHandler) Get(c *gin.Context) {
	id, ok := clubID(c)
	if !ok {
		return
	}

	club, err := h.clubService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	var input dto.CreateClubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) Update(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	var input dto.UpdateClubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	club, err := h.clubService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Delete(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), user, id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted successfully"})
}

func (h *ClubHandler) AddMember(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	var input dto.AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	club, err := h.clubService.AddMember(c.Request.Context(), user, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) RemoveMember(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		response.Error(c, apperror.NotFound("Member not found"))
		return
	}

	club, err := h.clubService.RemoveMember(c.Request.Context(), user, id, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) Enroll(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	club, err := h.clubService.Enroll(c.Request.Context(), user, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) AddEvent(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	var input dto.AddEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	club, err := h.clubService.AddEvent(c.Request.Context(), user, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) DeleteEvent(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := clubID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		response.Error(c, apperror.InvalidIndex("Invalid event index"))
		return
	}

	club, err := h.clubService.DeleteEvent(c.Request.Context(), user, id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, club)
}
