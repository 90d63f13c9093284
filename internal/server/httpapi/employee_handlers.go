package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
)

const dateLayout = "2006-01-02"

type employeeRequest struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	ZipCode     string  `json:"zip_code"`
	Department  string  `json:"department"`
	JobTitle    string  `json:"job_title"`
	Salary      float64 `json:"salary"`
	HireDate    string  `json:"hire_date"`
}

type employeeResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	DateOfBirth    string  `json:"date_of_birth"`
	Gender         string  `json:"gender"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Country        string  `json:"country"`
	ZipCode        string  `json:"zip_code"`
	Department     string  `json:"department"`
	JobTitle       string  `json:"job_title"`
	Salary         float64 `json:"salary"`
	HireDate       string  `json:"hire_date"`
	ProfilePicture string  `json:"profile_picture"`
}

type attachPictureRequest struct {
	Filename string `json:"filename"`
}

// adminUpdateRequest extends the profile fields with an optional picture
// filename; the admin update can replace the picture in the same request.
type adminUpdateRequest struct {
	employeeRequest
	PictureFilename string `json:"picture_filename"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toEmployeeResponse(emp *models.Employee, pictureURL string) employeeResponse {
	return employeeResponse{
		ID:             emp.ID,
		Username:       emp.Username,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
		DateOfBirth:    formatDate(emp.DateOfBirth),
		Gender:         emp.Gender,
		Address:        emp.Address,
		City:           emp.City,
		State:          emp.State,
		Country:        emp.Country,
		ZipCode:        emp.ZipCode,
		Department:     emp.Department,
		JobTitle:       emp.JobTitle,
		Salary:         emp.Salary,
		HireDate:       formatDate(emp.HireDate),
		ProfilePicture: pictureURL,
	}
}

func (h *handlers) getEmployee(c *gin.Context) {
	identity, _ := identityFromContext(c)

	emp, pictureURL, err := h.employees.Get(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "get employee failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponse(emp, pictureURL))
}

func (h *handlers) listEmployees(c *gin.Context) {
	emps, err := h.employees.List(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "list employees failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	out := make([]employeeResponse, 0, len(emps))
	for _, emp := range emps {
		// Raw storage key here; presigned URLs are minted per record on GET.
		out = append(out, toEmployeeResponse(emp, emp.ProfilePicture))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) updateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id is required to update employee data"})
		return
	}

	emp, errMsg := employeeFromRequest(req.ID, req)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMsg})
		return
	}

	if err := h.employees.Update(c.Request.Context(), emp); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "update employee failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee updated successfully"})
}

// employeeFromRequest maps the request DTO onto the model; the returned
// message is non-empty when a date field does not parse.
func employeeFromRequest(id int64, req employeeRequest) (*models.Employee, string) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, "invalid date_of_birth"
	}
	hire, err := parseDate(req.HireDate)
	if err != nil {
		return nil, "invalid hire_date"
	}

	return &models.Employee{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		ZipCode:     req.ZipCode,
		Department:  req.Department,
		JobTitle:    req.JobTitle,
		Salary:      req.Salary,
		HireDate:    hire,
	}, ""
}

func (h *handlers) patchEmployee(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid data format"})
		return
	}

	rawID, ok := updates["id"].(float64)
	if !ok || rawID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id is required to update employee data"})
		return
	}
	delete(updates, "id")

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	err := h.employees.PartialUpdate(c.Request.Context(), int64(rawID), updates)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "patch employee failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "employee updated successfully"})
	}
}

func (h *handlers) deleteEmployee(c *gin.Context) {
	identity, _ := identityFromContext(c)

	if err := h.employees.Delete(c.Request.Context(), identity.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "delete employee failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted successfully"})
}

// adminUpdateEmployee updates an arbitrary employee addressed by path id,
// optionally replacing the profile picture in the same request.
func (h *handlers) adminUpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid employee id"})
		return
	}

	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	emp, errMsg := employeeFromRequest(id, req.employeeRequest)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMsg})
		return
	}

	key, uploadURL, err := h.employees.AdminUpdate(c.Request.Context(), emp, req.PictureFilename)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "only .jpg, .jpeg, .png and .gif files are allowed"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "admin update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	case key != "":
		c.JSON(http.StatusOK, gin.H{"message": "employee updated successfully", "storageKey": key, "uploadUrl": uploadURL})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "employee updated successfully"})
	}
}

// adminDeleteEmployee deletes an arbitrary employee addressed by path id.
func (h *handlers) adminDeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid employee id"})
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "admin delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted successfully"})
}

func (h *handlers) attachProfilePicture(c *gin.Context) {
	identity, _ := identityFromContext(c)

	var req attachPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "filename is required"})
		return
	}

	key, uploadURL, err := h.employees.AttachProfilePicture(c.Request.Context(), identity.ID, req.Filename)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "only .jpg, .jpeg, .png and .gif files are allowed"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "attach profile picture failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"storageKey": key, "uploadUrl": uploadURL})
	}
}
