package mockapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/repository"
	"github.com/UnknownOlympus/staffdesk/internal/validation"
)

func (s *Server) index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"resources": []string{"users", "employees"}})
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users, err := s.backend.ListUsers(c.UserContext())
	if err != nil {
		return err //nolint:wrapcheck // handled by the error handler
	}
	return c.JSON(users)
}

func (s *Server) listEmployees(c *fiber.Ctx) error {
	employees, err := s.backend.ListEmployees(c.UserContext())
	if err != nil {
		return err //nolint:wrapcheck // handled by the error handler
	}
	return c.JSON(employees)
}

func (s *Server) createEmployee(c *fiber.Ctx) error {
	fields, err := parseFields(c)
	if err != nil {
		return err
	}

	created, err := s.backend.CreateEmployee(c.UserContext(), fields)
	if err != nil {
		return err //nolint:wrapcheck // handled by the error handler
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) updateEmployee(c *fiber.Ctx) error {
	identifier, err := parseID(c)
	if err != nil {
		return err
	}

	fields, err := parseFields(c)
	if err != nil {
		return err
	}

	updated, err := s.backend.UpdateEmployee(c.UserContext(), identifier, fields)
	if err != nil {
		return notFound(err)
	}

	return c.JSON(updated)
}

func (s *Server) deleteEmployee(c *fiber.Ctx) error {
	identifier, err := parseID(c)
	if err != nil {
		return err
	}

	if err = s.backend.DeleteEmployee(c.UserContext(), identifier); err != nil {
		return notFound(err)
	}

	return c.JSON(fiber.Map{})
}

func parseID(c *fiber.Ctx) (int, error) {
	identifier, err := c.ParamsInt("id")
	if err != nil || identifier <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid employee id")
	}
	return identifier, nil
}

func parseFields(c *fiber.Ctx) (models.EmployeeFields, error) {
	var fields models.EmployeeFields
	if err := c.BodyParser(&fields); err != nil {
		return fields, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validation.Employee(fields); err != nil {
		return fields, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return fields, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Employee not found")
	}
	return err
}
