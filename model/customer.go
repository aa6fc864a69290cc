package model

import "time"

type Customer struct {
	DTO
	PublicCode string `gorm:"unique;size:20" json:"customerCode"`
	UserName   string `gorm:"unique;not null" json:"username"`
	Email      string `gorm:"unique;not null" json:"email"`
	Phone      string `gorm:"not null" json:"phone"`
	Password   string `gorm:"not null" json:"-"`
	Name       string `json:"name"`
	Address    string `json:"address"`

	IsElite            bool    `gorm:"default:false" json:"isElite"`
	DineInCount        int     `gorm:"default:0" json:"dineInCount"`
	SubscriptionFee    float64 `gorm:"default:100" json:"subscriptionFee"`
	SubscriptionActive bool    `gorm:"default:false" json:"subscriptionActive"`
	MonthsRemaining    int     `gorm:"default:0" json:"monthsRemaining"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Customers []Customer

// HasActiveSubscription is the loyalty gate the pricing engine reads: the
// subscription flag alone is not enough, the months countdown must be alive.
func (c *Customer) HasActiveSubscription() bool {
	return c.SubscriptionActive && c.MonthsRemaining > 0
}

type RegisterCustomerInput struct {
	UserName string `validate:"required" json:"username"`
	Email    string `validate:"required,email" json:"email"`
	Phone    string `validate:"required" json:"phone"`
	Password string `validate:"required,min=6" json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type SubscribeEliteInput struct {
	Paid bool `json:"paid"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null" json:"customerId"`
	Token      string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
	Customer   Customer  `gorm:"foreignKey:CustomerId" json:"customer"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
