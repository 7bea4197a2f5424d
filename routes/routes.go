package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"civiceye/configs"
	"civiceye/controllers"
	"civiceye/entity"
	"civiceye/middlewares"
	"civiceye/repository"
	"civiceye/services"
	"civiceye/utils"
	"civiceye/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	issueRepo := repository.NewIssueRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	// Live feed for the admin dashboard
	hub := ws.NewFeedHub()
	go hub.Run()

	// Services
	assignSvc := services.NewAssignService(deptRepo, staffRepo)
	lifecycleSvc := services.NewLifecycleService(db, issueRepo, staffRepo, assignSvc)
	lifecycleSvc.Feed = hub

	var compressor services.ImageCompressor
	tempDir := filepath.Join(os.TempDir(), "civiceye")
	if cfg.CompressorURL != "" {
		compressor = services.NewRemoteCompressor(cfg.CompressorURL, tempDir)
	} else {
		compressor = services.NewCompressor(tempDir)
	}

	var backend services.ObjectStorage
	if cfg.StorageUploadURL != "" {
		backend = services.NewHTTPObjectStorage(cfg.StorageUploadURL)
	} else {
		backend = services.NewDiskStorage(cfg.UploadDir)
	}
	store := services.NewImageStore(backend)

	classifier := services.NewClassifier(cfg.MLPredictURL)
	intakeSvc := services.NewIntakeService(compressor, classifier, store, lifecycleSvc)
	proofSvc := services.NewProofOfWorkService(store, staffRepo, lifecycleSvc)
	statsSvc := services.NewStatsService(issueRepo, userRepo)
	otpSvc := services.NewOTPService(cfg.OTPBaseURL, cfg.OTPCustomerID, cfg.OTPAuthToken)
	complaintSvc := services.NewComplaintService(complaintRepo, issueRepo, assignSvc)

	// Controllers
	authCtrl := controllers.NewAuthController(db, userRepo, staffRepo, store, cfg)
	issueCtrl := controllers.NewIssueController(intakeSvc, lifecycleSvc, issueRepo)
	adminIssueCtrl := controllers.NewAdminIssueController(lifecycleSvc, assignSvc)
	staffCtrl := controllers.NewStaffController(proofSvc, lifecycleSvc, staffRepo, issueRepo)
	deptCtrl := controllers.NewDepartmentController(deptRepo, assignSvc)
	statsCtrl := controllers.NewStatsController(statsSvc)
	otpCtrl := controllers.NewOTPController(otpSvc)
	complaintCtrl := controllers.NewComplaintController(complaintSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/check-register", authCtrl.CheckRegister)
		a.POST("/check-login", authCtrl.CheckLogin)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware())
	{
		aAuth.GET("/me", authCtrl.Me)
	}

	// OTP proxy (public)
	otp := r.Group("/otp")
	{
		otp.POST("/send", otpCtrl.Send)
		otp.POST("/verify", otpCtrl.Verify)
	}

	// Departments
	r.GET("/departments", deptCtrl.List)
	r.GET("/departments/:key/staff", middlewares.AuthMiddleware(entity.RoleMunicipalAdmin, entity.RoleDepartmentAdmin), deptCtrl.ListStaff)

	// Issues (citizen)
	u := r.Group("/issues", middlewares.AuthMiddleware())
	{
		u.POST("", issueCtrl.Create)
		u.GET("", issueCtrl.All)
		u.GET("/mine", issueCtrl.MyReports)
		u.GET("/:id", issueCtrl.Detail)
		u.POST("/:id/upvote", issueCtrl.Upvote)
		u.POST("/:id/comments", issueCtrl.Comment)
		u.POST("/:id/complaints", complaintCtrl.Create)
		u.GET("/:id/complaints", complaintCtrl.ListForIssue)
	}

	// Partner Staff (field workers)
	partnerStaff := r.Group("/partner/staff", middlewares.AuthMiddleware(entity.RoleStaff))
	{
		partnerStaff.GET("/work", staffCtrl.Worklist)
		partnerStaff.PATCH("/issues/:id/start", staffCtrl.StartWork)
		partnerStaff.POST("/issues/:id/proof", staffCtrl.UploadProof)
	}

	// Admin (municipal and department admins)
	admin := r.Group("/admin", middlewares.AuthMiddleware(entity.RoleMunicipalAdmin, entity.RoleDepartmentAdmin))
	{
		admin.PATCH("/issues/:id/assign", adminIssueCtrl.AssignIssue)
		admin.PATCH("/issues/:id/reassign-dept", adminIssueCtrl.ReassignDept)
		admin.PATCH("/issues/:id/assign-staff", adminIssueCtrl.AssignStaff)
		admin.PATCH("/issues/:id/status", adminIssueCtrl.ChangeStatus)

		admin.GET("/complaints", complaintCtrl.ListAll)
		admin.POST("/complaints/:id/actions", complaintCtrl.AddAction)
		admin.PATCH("/complaints/:id/status", complaintCtrl.UpdateStatus)

		admin.POST("/staff", authCtrl.CreateStaff)

		admin.GET("/stats/issues/total", statsCtrl.TotalIssues)
		admin.GET("/stats/issues/resolved", statsCtrl.ResolvedIssues)
		admin.GET("/stats/issues/critical", statsCtrl.CriticalIssues)
		admin.GET("/stats/issues/recent", statsCtrl.RecentIssues)
		admin.GET("/stats/users/total", statsCtrl.TotalUsers)
	}

	// Municipal admin only
	muni := r.Group("/admin", middlewares.AuthMiddleware(entity.RoleMunicipalAdmin))
	{
		muni.POST("/departments", deptCtrl.Create)
		muni.POST("/department-admins", authCtrl.CreateDepartmentAdmin)

		muni.GET("/users", statsCtrl.Users)
		muni.PATCH("/users/:id", statsCtrl.UpdateUser)
		muni.DELETE("/users/:id", statsCtrl.DeleteUser)
	}

	// Live feed websocket (admin dashboard)
	r.GET("/ws/feed", middlewares.WSAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		role := utils.CurrentRole(c)
		if role != entity.RoleMunicipalAdmin && role != entity.RoleDepartmentAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		hub.HandleWebSocket(c)
	})
}
