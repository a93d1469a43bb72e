package handlers

import (
	"fmt"
	"net/http"

	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Employee Handlers ---
//

// AddEmployeeInput defines the JSON input for adding an employee.
type AddEmployeeInput struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
}

// UpdateEmployeeInput requires every field, as the update form always has.
type UpdateEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	JobTitle string `json:"jobTitle" binding:"required"`
}

// AddEmployee is the handler for POST /v1/employees
func (h *Handlers) AddEmployee(c *gin.Context) {
	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Managers.Employees.Add(c.Request.Context(), input.Name, input.JobTitle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Employee %s added successfully!", input.Name)})
}

// UpdateEmployee is the handler for PUT /v1/employees/:id
func (h *Handlers) UpdateEmployee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Managers.Employees.Update(c.Request.Context(), id, input.Name, input.JobTitle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Employee %d updated successfully!", id)})
}

// GetEmployees is the handler for GET /v1/employees
// With ?name= it runs SearchEmployee, otherwise ShowEmployee.
func (h *Handlers) GetEmployees(c *gin.Context) {
	var (
		employees []models.Employee
		err       error
	)
	if name, ok := c.GetQuery("name"); ok {
		employees, err = h.Managers.Employees.Search(c.Request.Context(), name)
	} else {
		employees, err = h.Managers.Employees.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}
