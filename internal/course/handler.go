package course

import (
	"errors"
	"net/http"

	"studybilling/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// ListCourses godoc
// @Summary      Get courses list
// @Description  Returns all courses. For free courses the price field is unset.
// @Tags         courses
// @Produce      json
// @Success      200  {array}   CourseResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/courses [get]
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load courses"})
		return
	}

	response := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		response = append(response, NewCourseResponse(&courses[i]))
	}

	c.JSON(http.StatusOK, response)
}

// ShowCourse godoc
// @Summary      Get course info by its code
// @Description  Returns a single course. For free courses the price field is unset.
// @Tags         courses
// @Produce      json
// @Param        code  path      string  true  "Course code"
// @Success      200   {object}  CourseResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /api/v1/courses/{code} [get]
func (h *Handler) ShowCourse(c *gin.Context) {
	code := c.Param("code")

	crs, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load course"})
		return
	}

	c.JSON(http.StatusOK, NewCourseResponse(crs))
}

// CreateCourse godoc
// @Summary      Create course
// @Description  Admin-only: creates a new course.
// @Tags         admin,courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CourseRequest  true  "New course data"
// @Success      201      {object}  api.SuccessResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/v1/courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	_, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeExists):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Course with given code already exists"})
		case errors.Is(err, ErrUnknownType):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Course type must be one of: free, rent, buy"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create course"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.SuccessResponse{Success: true})
}

// EditCourse godoc
// @Summary      Edit course
// @Description  Admin-only: edits an existing course identified by its code.
// @Tags         admin,courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code     path      string         true  "Course code"
// @Param        request  body      CourseRequest  true  "Course data"
// @Success      200      {object}  api.SuccessResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/v1/courses/{code} [post]
func (h *Handler) EditCourse(c *gin.Context) {
	code := c.Param("code")

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	_, err := h.service.Update(c.Request.Context(), code, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourseNotFound):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Course with given code does not exist"})
		case errors.Is(err, ErrCodeExists):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Course with given code already exists"})
		case errors.Is(err, ErrUnknownType):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Course type must be one of: free, rent, buy"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to edit course"})
		}
		return
	}

	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
