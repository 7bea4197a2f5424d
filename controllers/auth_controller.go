package controllers

import (
	"context"
	"net/http"
	"strings"

	"civiceye/configs"
	"civiceye/entity"
	"civiceye/pkg/resp"
	"civiceye/repository"
	"civiceye/services"
	"civiceye/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FullName     string `form:"fullName" binding:"required"`
	Email        string `form:"email" binding:"required,email"`
	MobileNumber string `form:"mobileNumber" binding:"required"`
	Password     string `form:"password" binding:"required,min=6"`
	AadharNumber string `form:"aadharNumber"`
	Gender       string `form:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB    *gorm.DB
	Users *repository.UserRepository
	Staff *repository.StaffRepository
	Store *services.ImageStore
	Cfg   *configs.Config
}

func NewAuthController(db *gorm.DB, users *repository.UserRepository, staff *repository.StaffRepository, store *services.ImageStore, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Users: users, Staff: staff, Store: store, Cfg: cfg}
}

// POST /auth/register (multipart; optional avatar file)
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	exists, err := a.Users.ExistsByAny(strings.ToLower(req.Email), req.MobileNumber, req.AadharNumber)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if exists {
		resp.BadRequest(c, "user already exists")
		return
	}

	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil {
		tmp, err := saveUploadTemp(c, file)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		url, err := a.Store.Store(context.Background(), tmp, "avatars")
		if err != nil {
			respondError(c, err)
			return
		}
		avatarURL = url
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	user := entity.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		MobileNumber: req.MobileNumber,
		AadharNumber: req.AadharNumber,
		Gender:       req.Gender,
		Password:     string(hashed),
		Role:         entity.RoleCitizen,
		Avatar:       avatarURL,
	}
	if err := a.Users.Create(&user); err != nil {
		resp.ServerError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.Created(c, gin.H{"user": user, "token": token})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Users.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": user})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Users.FindByID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, user)
}

// POST /auth/check-register, probed by the mobile app before starting OTP.
func (a *AuthController) CheckRegister(c *gin.Context) {
	var req struct {
		MobileNumber string `json:"mobileNumber"`
		Email        string `json:"email"`
		AadharNumber string `json:"aadharNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	exists, err := a.Users.ExistsByAny(strings.ToLower(req.Email), req.MobileNumber, req.AadharNumber)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if exists {
		resp.Conflict(c, "user already exists, please login")
		return
	}
	resp.OK(c, gin.H{"message": "you can proceed with registration"})
}

// POST /auth/check-login
func (a *AuthController) CheckLogin(c *gin.Context) {
	var req struct {
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if _, err := a.Users.FindByMobile(req.MobileNumber); err != nil {
		resp.NotFound(c, "user not found, please register")
		return
	}
	resp.OK(c, gin.H{"message": "user exists, proceed with login"})
}

type createPrivilegedUserReq struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	Department   string `json:"department" binding:"required"`
	Designation  string `json:"designation"`
}

// POST /admin/department-admins (MUNICIPAL_ADMIN only, gated in routes)
func (a *AuthController) CreateDepartmentAdmin(c *gin.Context) {
	a.createPrivileged(c, entity.RoleDepartmentAdmin)
}

// POST /admin/staff (MUNICIPAL_ADMIN or DEPARTMENT_ADMIN)
func (a *AuthController) CreateStaff(c *gin.Context) {
	a.createPrivileged(c, entity.RoleStaff)
}

func (a *AuthController) createPrivileged(c *gin.Context, role string) {
	var req createPrivilegedUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// A department admin may only create staff inside their own department.
	if utils.CurrentRole(c) == entity.RoleDepartmentAdmin {
		actor, err := a.Users.FindByID(utils.CurrentUserID(c))
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		if actor.Department == nil || *actor.Department != req.Department {
			resp.Forbidden(c, "you can only create staff for your department")
			return
		}
	}

	exists, err := a.Users.ExistsByAny(strings.ToLower(req.Email), req.MobileNumber, "")
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if exists {
		resp.Conflict(c, "user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	dept := req.Department
	user := entity.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		MobileNumber: req.MobileNumber,
		Password:     string(hashed),
		Role:         role,
		Department:   &dept,
	}
	if err := a.Users.Create(&user); err != nil {
		resp.ServerError(c, err)
		return
	}

	if role == entity.RoleStaff {
		staff := entity.Staff{
			Name:        user.FullName,
			UserID:      user.ID,
			Department:  dept,
			Designation: req.Designation,
			Active:      true,
		}
		if err := a.Staff.Create(&staff); err != nil {
			resp.ServerError(c, err)
			return
		}
	}

	resp.Created(c, user)
}
