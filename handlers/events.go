// events.go - Event CRUD handlers. Mutations are admin-only; reads require
// any valid session.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SeniduRavihara/usj-event-calendar/database"
	"github.com/SeniduRavihara/usj-event-calendar/middleware"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

type CreateEventInput struct {
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description" binding:"required"`
	Date                 string   `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	EventTime            string   `json:"event_time"`
	Location             string   `json:"location"`
	Departments          []string `json:"departments"`
	RegistrationRequired bool     `json:"registration_required"`
	RegistrationLink     string   `json:"registration_link"`
	Color                string   `json:"color"`
	Image                string   `json:"image"`
}

// UpdateEventInput uses pointers so an omitted field can be told apart from
// an explicit empty value: omitted fields keep their stored values.
type UpdateEventInput struct {
	Title                *string   `json:"title"`
	Description          *string   `json:"description"`
	Date                 *string   `json:"date"`
	EventTime            *string   `json:"event_time"`
	Location             *string   `json:"location"`
	Departments          *[]string `json:"departments"`
	RegistrationRequired *bool     `json:"registration_required"`
	RegistrationLink     *string   `json:"registration_link"`
	Color                *string   `json:"color"`
	Image                *string   `json:"image"`
}

type creatorInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

type eventResponse struct {
	ID                   uint        `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Date                 string      `json:"date"` // YYYY-MM-DD
	EventTime            string      `json:"event_time,omitempty"`
	Location             string      `json:"location"`
	Departments          []string    `json:"departments"`
	RegistrationRequired bool        `json:"registration_required"`
	RegistrationLink     string      `json:"registration_link,omitempty"`
	Color                string      `json:"color,omitempty"`
	Image                string      `json:"image,omitempty"`
	Creator              creatorInfo `json:"creator"`
	CreatedAt            string      `json:"created_at"`
}

func toEventResponse(ev *models.Event) eventResponse {
	return eventResponse{
		ID:                   ev.ID,
		Title:                ev.Title,
		Description:          ev.Description,
		Date:                 ev.Date.Format("2006-01-02"),
		EventTime:            ev.EventTime,
		Location:             ev.Location,
		Departments:          ev.Departments,
		RegistrationRequired: ev.RegistrationRequired,
		RegistrationLink:     ev.RegistrationLink,
		Color:                ev.Color,
		Image:                ev.Image,
		Creator: creatorInfo{
			Name:       ev.Creator.Name,
			Email:      ev.Creator.Email,
			Department: ev.Creator.Department,
		},
		CreatedAt: ev.CreatedAt.Format("2006-01-02"),
	}
}

func validDepartments(tags []string) bool {
	for _, t := range tags {
		if !models.ValidDepartmentTag(t) {
			return false
		}
	}
	return true
}

func eventByID(c *gin.Context) (*models.Event, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid event id")
		return nil, false
	}
	var ev models.Event
	if err := database.DB.Preload("Creator").First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Event not found")
			return nil, false
		}
		serverError(c, err)
		return nil, false
	}
	return &ev, true
}

// ListEvents returns all events ordered by date ascending, each annotated
// with the creator's public profile fields.
func ListEvents(c *gin.Context) {
	var events []models.Event
	if err := database.DB.Preload("Creator").Order("date asc").Find(&events).Error; err != nil {
		serverError(c, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func GetEvent(c *gin.Context) {
	ev, ok := eventByID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": toEventResponse(ev)})
}

func CreateEvent(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Title, description and date are required")
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid date format (use RFC3339 or YYYY-MM-DD)")
		return
	}
	if !validDepartments(input.Departments) {
		jsonError(c, http.StatusBadRequest, "Unknown department tag")
		return
	}

	// The creator must still resolve to an ADMIN account; the role claim in
	// the token is a snapshot and the account may be gone.
	var creator models.User
	if err := database.DB.First(&creator, claims.UserID).Error; err != nil || !creator.IsAdmin() {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
		jsonError(c, http.StatusForbidden, "Admin access required")
		return
	}

	ev := models.Event{
		Title:                strings.TrimSpace(input.Title),
		Description:          input.Description,
		Date:                 date,
		EventTime:            input.EventTime,
		Location:             input.Location,
		Departments:          input.Departments,
		RegistrationRequired: input.RegistrationRequired,
		RegistrationLink:     input.RegistrationLink,
		Color:                input.Color,
		Image:                input.Image,
		CreatedBy:            creator.ID,
	}
	if err := database.DB.Create(&ev).Error; err != nil {
		serverError(c, err)
		return
	}
	ev.Creator = creator

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   toEventResponse(&ev),
	})
}

// UpdateEvent applies partial-field semantics: any omitted field keeps its
// previous stored value.
func UpdateEvent(c *gin.Context) {
	ev, ok := eventByID(c)
	if !ok {
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.Title != nil {
		if *input.Title == "" {
			jsonError(c, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		ev.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ev.Description = *input.Description
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "Invalid date format (use RFC3339 or YYYY-MM-DD)")
			return
		}
		ev.Date = date
	}
	if input.EventTime != nil {
		ev.EventTime = *input.EventTime
	}
	if input.Location != nil {
		ev.Location = *input.Location
	}
	if input.Departments != nil {
		if !validDepartments(*input.Departments) {
			jsonError(c, http.StatusBadRequest, "Unknown department tag")
			return
		}
		ev.Departments = *input.Departments
	}
	if input.RegistrationRequired != nil {
		ev.RegistrationRequired = *input.RegistrationRequired
	}
	if input.RegistrationLink != nil {
		ev.RegistrationLink = *input.RegistrationLink
	}
	if input.Color != nil {
		ev.Color = *input.Color
	}
	if input.Image != nil {
		ev.Image = *input.Image
	}

	if err := database.DB.Omit("Creator").Save(ev).Error; err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully",
		"event":   toEventResponse(ev),
	})
}

func DeleteEvent(c *gin.Context) {
	ev, ok := eventByID(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&models.Event{}, ev.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
