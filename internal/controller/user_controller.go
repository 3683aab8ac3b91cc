package controller

import (
	"fmt"
	"path/filepath"
	"time"

	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserRepo       *repository.UserRepository
	StorageService *service.StorageService
}

func NewUserController(userRepo *repository.UserRepository, storageService *service.StorageService) *UserController {
	return &UserController{
		UserRepo:       userRepo,
		StorageService: storageService,
	}
}

// swagger:model ProfileUpdateRequest
type ProfileUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ProfileUpdateRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := c.UserRepo.Save(user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary Upload an avatar image for the current user
// @Tags users
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "avatar image"
// @Success 200 {object} util.Response{data=object}
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	claims := util.GetUserFromContext(ctx)
	filename := fmt.Sprintf("avatars/%d-%d%s", claims.UserID, time.Now().Unix(), filepath.Ext(fileHeader.Filename))

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx, "User not found")
		return
	}
	user.AvatarURL = url
	if err := c.UserRepo.Save(user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatarUrl": url})
}
