// analytics.go - Aggregate user statistics for the admin dashboard.
// Read-only; no mutation happens here.

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SeniduRavihara/usj-event-calendar/database"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

type groupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// UserAnalytics aggregates count-by-role, count-by-department, accounts
// created in the trailing 30 days, accounts holding a student ID, and the
// full user list with the password hash stripped.
func UserAnalytics(c *gin.Context) {
	db := database.DB

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	var roleCounts []groupCount
	if err := db.Model(&models.User{}).
		Select("role as key, count(*) as count").
		Group("role").
		Scan(&roleCounts).Error; err != nil {
		serverError(c, err)
		return
	}
	byRole := make(map[string]int64, len(roleCounts))
	for _, rc := range roleCounts {
		byRole[rc.Key] = rc.Count
	}

	var deptCounts []groupCount
	if err := db.Model(&models.User{}).
		Select("department as key, count(*) as count").
		Where("department <> ''").
		Group("department").
		Scan(&deptCounts).Error; err != nil {
		serverError(c, err)
		return
	}
	byDepartment := make(map[string]int64, len(deptCounts))
	for _, dc := range deptCounts {
		byDepartment[dc.Key] = dc.Count
	}

	var recent int64
	cutoff := time.Now().AddDate(0, 0, -30)
	if err := db.Model(&models.User{}).Where("created_at >= ?", cutoff).Count(&recent).Error; err != nil {
		serverError(c, err)
		return
	}

	var withStudentID int64
	if err := db.Model(&models.User{}).Where("student_id IS NOT NULL").Count(&withStudentID).Error; err != nil {
		serverError(c, err)
		return
	}

	var users []models.User
	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		serverError(c, err)
		return
	}
	publicUsers := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicUsers = append(publicUsers, users[i].Public())
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics": gin.H{
			"total_users":      total,
			"by_role":          byRole,
			"by_department":    byDepartment,
			"new_last_30_days": recent,
			"with_student_id":  withStudentID,
		},
		"users": publicUsers,
	})
}
