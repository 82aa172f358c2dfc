package handlers

import (
	"net/http"

	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

// ListEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} models.Employee
// @Security BearerAuth
// @Router /api/v1/employees [get]
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.Employees.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employees)
}

// EmployeeNames returns employee names for incharge pickers.
func (h *Handler) EmployeeNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Employees.Names(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}

// CreateEmployee godoc
// @Summary Create an employee, optionally with a login
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body records.EmployeeInput true "Employee"
// @Success 201 {object} models.Employee
// @Failure 409 {object} errorResponse "username taken"
// @Security BearerAuth
// @Router /api/v1/employees [post]
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in records.EmployeeInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	employee, err := h.svc.Employees.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	employee, err := h.svc.Employees.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var in records.EmployeeInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	employee, err := h.svc.Employees.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Employees.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
