package controllers

import (
	"strconv"

	"civiceye/pkg/resp"
	"civiceye/repository"
	"civiceye/services"
	"civiceye/utils"

	"github.com/gin-gonic/gin"
)

type IssueController struct {
	Intake    *services.IntakeService
	Lifecycle *services.LifecycleService
	Repo      *repository.IssueRepository
}

func NewIssueController(intake *services.IntakeService, lifecycle *services.LifecycleService, repo *repository.IssueRepository) *IssueController {
	return &IssueController{Intake: intake, Lifecycle: lifecycle, Repo: repo}
}

type createIssueReq struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Type        string  `form:"type" binding:"required"`
	Latitude    float64 `form:"latitude"`
	Longitude   float64 `form:"longitude"`
	Address     string  `form:"address"`
}

// POST /issues (multipart: fields + up to 5 "images" files)
func (ic *IssueController) Create(c *gin.Context) {
	var req createIssueReq
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		resp.BadRequest(c, "multipart form required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		resp.BadRequest(c, "at least one image is required")
		return
	}
	if len(files) > 5 {
		resp.BadRequest(c, "at most 5 images are allowed")
		return
	}

	var paths []string
	for _, f := range files {
		p, err := saveUploadTemp(c, f)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		paths = append(paths, p)
	}

	issue, err := ic.Intake.CreateIssue(c.Request.Context(), utils.CurrentUserID(c), services.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	}, paths)
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := ic.Repo.FindDetail(issue.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, detail)
}

// GET /issues/mine
func (ic *IssueController) MyReports(c *gin.Context) {
	issues, err := ic.Repo.ListByReporter(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, issues)
}

// GET /issues
func (ic *IssueController) All(c *gin.Context) {
	issues, err := ic.Repo.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, issues)
}

// GET /issues/:id
func (ic *IssueController) Detail(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	issue, err := ic.Repo.FindDetail(id)
	if err != nil {
		resp.NotFound(c, "issue not found")
		return
	}
	resp.OK(c, issue)
}

// POST /issues/:id/upvote
func (ic *IssueController) Upvote(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	added, err := ic.Lifecycle.ToggleUpvote(id, utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := ic.Repo.CountUpvotes(id)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"upvoted": added, "upvotes": count})
}

// POST /issues/:id/comments
func (ic *IssueController) Comment(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	comment, err := ic.Lifecycle.AddComment(id, utils.CurrentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, comment)
}

func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0
	}
	return uint(id)
}
