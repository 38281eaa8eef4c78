package handler

import (
	"net/http"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/middleware"
	"github.com/Khushi2755/academix/internal/service"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/Khushi2755/academix/pkg/response"
	"github.com/Khushi2755/academix/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	var avatar *service.AvatarFile
	if file, err := c.FormFile("avatar"); err == nil {
		opened, err := file.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer opened.Close()
		avatar = &service.AvatarFile{Reader: opened, FileName: file.Filename}
	}

	res, err := h.authService.Register(c.Request.Context(), input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized"))
		return
	}

	c.JSON(http.StatusOK, service.UserToResponse(user))
}
