package model

// Cashier is a staff account that runs counter intake (takeaway and dine-in)
type Cashier struct {
	DTO
	PublicCode string  `gorm:"unique;size:20" json:"employeeCode"`
	Name       string  `gorm:"not null" json:"name"`
	Email      string  `gorm:"unique;not null" json:"email"`
	Phone      string  `json:"phone"`
	Password   string  `gorm:"not null" json:"-"`
	Salary     float64 `json:"salary"`
	Shift      string  `json:"shift"`
	Role       string  `gorm:"default:CASHIER" json:"role"`
	Active     bool    `gorm:"default:true" json:"active"`
}

type Cashiers []Cashier

type CreateCashierInput struct {
	Name     string  `validate:"required" json:"name"`
	Email    string  `validate:"required,email" json:"email"`
	Phone    string  `json:"phone"`
	Password string  `validate:"required,min=6" json:"password"`
	Salary   float64 `validate:"gte=0" json:"salary"`
	Shift    string  `validate:"required,oneof=DAY NIGHT" json:"shift"`
	Role     string  `validate:"omitempty,oneof=ADMIN CASHIER" json:"role"`
}
