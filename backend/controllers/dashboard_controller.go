package controllers

import (
	"context"

	"classroom-dashboard/backend/models"
	"classroom-dashboard/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DashboardService is the part of dashboard.Service the handlers need.
type DashboardService interface {
	Dashboard(ctx context.Context, classroomID string) models.Dashboard
	WeeklyAttendance(ctx context.Context, classroomID string) models.WeeklyAttendanceData
	WeeklyPendencies(ctx context.Context, classroomID string) models.WeeklyPendenciesData
	ActiveProject(ctx context.Context, classroomID string) *models.ActiveProjectData
	StudentsWithConsecutiveAbsences(ctx context.Context, classroomID string) []models.StudentAbsence
	StudentsWithConsecutivePendencies(ctx context.Context, classroomID string) []models.StudentPendency
	StudentPresence(ctx context.Context, classroomID, studentID string) models.PresenceByType
}

type DashboardController struct {
	Service  DashboardService
	validate *validator.Validate
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{Service: service, validate: validator.New()}
}

type classroomParams struct {
	ClassroomID string `params:"classroomId" validate:"required,uuid"`
}

type studentParams struct {
	ClassroomID string `params:"classroomId" validate:"required,uuid"`
	StudentID   string `params:"studentId" validate:"required,uuid"`
}

func (dc *DashboardController) classroomID(c *fiber.Ctx) (string, error) {
	var params classroomParams
	if err := c.ParamsParser(&params); err != nil {
		return "", err
	}
	if err := dc.validate.Struct(params); err != nil {
		return "", err
	}
	return params.ClassroomID, nil
}

// GetDashboard returns every view of the classroom home page at once.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	return utils.OK(c, dc.Service.Dashboard(c.UserContext(), classroomID))
}

func (dc *DashboardController) GetWeeklyAttendance(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	return utils.OK(c, dc.Service.WeeklyAttendance(c.UserContext(), classroomID))
}

func (dc *DashboardController) GetWeeklyPendencies(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	return utils.OK(c, dc.Service.WeeklyPendencies(c.UserContext(), classroomID))
}

// GetActiveProject answers with data null when no project is running.
func (dc *DashboardController) GetActiveProject(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	if project := dc.Service.ActiveProject(c.UserContext(), classroomID); project != nil {
		return utils.OK(c, project)
	}
	return utils.OK(c, nil)
}

func (dc *DashboardController) GetConsecutiveAbsences(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	return utils.OK(c, dc.Service.StudentsWithConsecutiveAbsences(c.UserContext(), classroomID))
}

func (dc *DashboardController) GetConsecutivePendencies(c *fiber.Ctx) error {
	classroomID, err := dc.classroomID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid classroom ID")
	}
	return utils.OK(c, dc.Service.StudentsWithConsecutivePendencies(c.UserContext(), classroomID))
}

func (dc *DashboardController) GetStudentPresence(c *fiber.Ctx) error {
	var params studentParams
	if err := c.ParamsParser(&params); err != nil {
		return utils.BadRequest(c, "Invalid path parameters")
	}
	if err := dc.validate.Struct(params); err != nil {
		return utils.BadRequest(c, "Invalid classroom or student ID")
	}
	return utils.OK(c, dc.Service.StudentPresence(c.UserContext(), params.ClassroomID, params.StudentID))
}
