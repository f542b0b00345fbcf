package models

// UserAgent is sent with every request to the employee API.
const UserAgent = "staffdesk/1.0 (+https://github.com/UnknownOlympus/staffdesk)"

// Employee represents an employee record as served by the API.
type Employee struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
}

// EmployeeFields is the editable part of an employee: everything but the
// server-assigned identifier. It is the body of create and update requests.
type EmployeeFields struct {
	Name     string  `json:"name"     validate:"required"`
	Email    string  `json:"email"    validate:"required,email"`
	Position string  `json:"position" validate:"required"`
	Salary   float64 `json:"salary"   validate:"gt=0"`
}

// Fields returns the editable fields of the employee.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{Name: e.Name, Email: e.Email, Position: e.Position, Salary: e.Salary}
}

// WithID builds an employee record from fields and an identifier.
func (f EmployeeFields) WithID(id int) Employee {
	return Employee{ID: id, Name: f.Name, Email: f.Email, Position: f.Position, Salary: f.Salary}
}
