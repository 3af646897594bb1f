package dto

// CreateEmployeeRequest alta de empleado. Password se almacena hasheado y
// habilita el login del empleado.
type CreateEmployeeRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Age       int    `json:"age"`
	Direction string `json:"direction"`
	Password  string `json:"password"`
}

// UpdateEmployeeRequest reemplazo completo de los campos del empleado.
// Password vacío conserva la contraseña actual.
type UpdateEmployeeRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Age       int    `json:"age"`
	Direction string `json:"direction"`
	Password  string `json:"password"`
}
