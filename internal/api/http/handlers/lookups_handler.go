package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/appogelardexa/ticket-triage/internal/api/dto"
	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// LookupsHandler manages the reference entities tickets point at.
type LookupsHandler struct {
	clients     repository.ClientRepository
	staff       repository.StaffRepository
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	companies   repository.CompanyRepository
}

// LookupDependencies bundles repositories for the handler.
type LookupDependencies struct {
	ClientRepo     repository.ClientRepository
	StaffRepo      repository.StaffRepository
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	CompanyRepo    repository.CompanyRepository
}

// NewLookupsHandler constructs handler.
func NewLookupsHandler(deps LookupDependencies) *LookupsHandler {
	return &LookupsHandler{
		clients:     deps.ClientRepo,
		staff:       deps.StaffRepo,
		departments: deps.DepartmentRepo,
		categories:  deps.CategoryRepo,
		companies:   deps.CompanyRepo,
	}
}

// CreateClient POST /lookups/clients.
func (h *LookupsHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return util.NewValidationError("name required", nil)
	}
	client := &domain.Client{
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Domain:    req.Domain,
		CompanyID: req.CompanyID,
	}
	if err := h.clients.Create(c.UserContext(), client); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": client})
}

// ListClients GET /lookups/clients.
func (h *LookupsHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clients})
}

// DeleteClient DELETE /lookups/clients/:id.
func (h *LookupsHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.clients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateStaff POST /lookups/staff.
func (h *LookupsHandler) CreateStaff(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return util.NewValidationError("name and email required", nil)
	}
	staff := &domain.Staff{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Status: domain.StaffStatus(req.Status),
	}
	if staff.Status != "" && staff.Status != domain.StaffActive && staff.Status != domain.StaffInactive {
		return util.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}
	if err := h.staff.Create(c.UserContext(), staff); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": staff})
}

// ListStaff GET /lookups/staff.
func (h *LookupsHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.staff.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staff})
}

// SetStaffStatus PATCH /lookups/staff/:id/status.
func (h *LookupsHandler) SetStaffStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.SetStaffStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	status := domain.StaffStatus(req.Status)
	if status != domain.StaffActive && status != domain.StaffInactive {
		return util.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}
	if err := h.staff.SetStatus(c.UserContext(), id, status); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateDepartment POST /lookups/departments.
func (h *LookupsHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return util.NewValidationError("name required", nil)
	}
	dept := &domain.Department{Name: strings.TrimSpace(req.Name)}
	if err := h.departments.Create(c.UserContext(), dept); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dept})
}

// ListDepartments GET /lookups/departments.
func (h *LookupsHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departments.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departments})
}

// CreateCategory POST /lookups/categories.
func (h *LookupsHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == 0 || strings.TrimSpace(req.Name) == "" {
		return util.NewValidationError("department_id and name required", nil)
	}
	if _, err := h.departments.GetByID(c.UserContext(), req.DepartmentID); err != nil {
		return err
	}
	category := &domain.Category{DepartmentID: req.DepartmentID, Name: strings.TrimSpace(req.Name)}
	if err := h.categories.Create(c.UserContext(), category); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": category})
}

// ListCategories GET /lookups/departments/:id/categories.
func (h *LookupsHandler) ListCategories(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	categories, err := h.categories.ListByDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}

// CreateCompany POST /lookups/companies.
func (h *LookupsHandler) CreateCompany(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return util.NewValidationError("name required", nil)
	}
	company := &domain.Company{Name: strings.TrimSpace(req.Name)}
	if err := h.companies.Create(c.UserContext(), company); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": company})
}

// ListCompanies GET /lookups/companies.
func (h *LookupsHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companies})
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, util.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
