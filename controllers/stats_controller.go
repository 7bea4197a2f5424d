package controllers

import (
	"strconv"

	"civiceye/pkg/resp"
	"civiceye/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GET /admin/stats/issues/total
func (sc *StatsController) TotalIssues(c *gin.Context) {
	sc.count(c, sc.Stats.TotalIssues)
}

// GET /admin/stats/users/total
func (sc *StatsController) TotalUsers(c *gin.Context) {
	sc.count(c, sc.Stats.TotalUsers)
}

// GET /admin/stats/issues/resolved
func (sc *StatsController) ResolvedIssues(c *gin.Context) {
	sc.count(c, sc.Stats.ResolvedIssues)
}

// GET /admin/stats/issues/critical
func (sc *StatsController) CriticalIssues(c *gin.Context) {
	sc.count(c, sc.Stats.CriticalIssues)
}

func (sc *StatsController) count(c *gin.Context, fn func() (int64, error)) {
	n, err := fn()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"count": n})
}

// GET /admin/stats/issues/recent?limit=
func (sc *StatsController) RecentIssues(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	issues, err := sc.Stats.RecentIssues(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, issues)
}

// GET /admin/users
func (sc *StatsController) Users(c *gin.Context) {
	users, err := sc.Stats.ListUsers()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, users)
}

// PATCH /admin/users/:id
func (sc *StatsController) UpdateUser(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		FullName     *string `json:"fullName"`
		Email        *string `json:"email"`
		MobileNumber *string `json:"mobileNumber"`
		Role         *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := sc.Stats.UpdateUser(id, services.UpdateUserInput{
		FullName:     req.FullName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Role:         req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /admin/users/:id
func (sc *StatsController) DeleteUser(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	if err := sc.Stats.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
