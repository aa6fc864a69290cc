package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/jordan-wright/email"
	"gorm.io/gorm"
)

func RegisterCustomer(c *fiber.Ctx) error {
	db := database.DB

	customerInput, ok := c.Locals("RegisterCustomer").(model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil, "general")
	}

	var existing model.Customer
	if err := db.Where("user_name = ?", customerInput.UserName).First(&existing).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Username is already taken", nil, "username")
	}

	existingByEmail, err := helper.GetCustomerByEmail(customerInput.Email)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "email")
	}
	if existingByEmail != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email is already registered", nil, "email")
	}

	hash, err := helper.HashPassword(customerInput.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	newCustomer := new(model.Customer)
	copier.Copy(&newCustomer, &customerInput)
	newCustomer.Password = hash
	newCustomer.PublicCode = helper.NextCustomerCode()
	newCustomer.SubscriptionFee = constants.ELITE_SUBSCRIPTION_FEE
	newCustomer.IsActive = true

	if err := db.Create(&newCustomer).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			if strings.Contains(err.Error(), "email") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email is already registered", nil, "email")
			}
			if strings.Contains(err.Error(), "user_name") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Username is already taken", nil, "username")
			}
		}
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err, "general")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newCustomer)
}

// Me returns the logged-in customer's profile with loyalty standing
func Me(c *fiber.Ctx) error {
	customer, err := helper.GetCustomerFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer":           customer,
		"subscriptionActive": customer.HasActiveSubscription(),
		"eliteEligible":      helper.EliteEligible(customer),
		"dineInsToElite":     max(0, constants.ELITE_DINE_IN_THRESHOLD-customer.DineInCount),
	})
}

// SubscribeElite activates elite membership: paid, or free once the customer
// has the dine-in count
func SubscribeElite(c *fiber.Ctx) error {
	customer, err := helper.GetCustomerFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", err)
	}

	var input model.SubscribeEliteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	activated, err := helper.SubscribeToElite(customer, input.Paid)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !activated {
		return utils.ErrorResponse(c, fiber.StatusPaymentRequired,
			fmt.Sprintf("Payment of EGP %.2f required, or %d dine-ins (current: %d)",
				customer.SubscriptionFee, constants.ELITE_DINE_IN_THRESHOLD, customer.DineInCount),
			nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer": customer,
		"message":  "Elite activated: 10% discount on all orders",
	})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func ForgotPassword(c *fiber.Ctx) error {
	var input model.ForgotPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	// same response whether or not the address exists
	if customer == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "If the email exists, a reset link was sent"})
	}

	token, err := generateResetToken()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	reset := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(30 * time.Minute),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	go sendResetEmail(customer.Email, token)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "If the email exists, a reset link was sent"})
}

func sendResetEmail(to, token string) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	baseURL := os.Getenv("FRONTEND_URL")

	if host == "" || from == "" {
		log.Println("smtp not configured, skipping reset mail")
		return
	}

	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = "Password reset"
	e.Text = []byte(fmt.Sprintf("Reset your password: %s/reset-password?token=%s\nThe link expires in 30 minutes.", baseURL, token))

	auth := smtp.PlainAuth("", username, password, host)
	if err := e.Send(host+":"+port, auth); err != nil {
		log.Printf("reset mail failed: %v", err)
	}
}

func ResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	var reset model.PasswordResetToken
	if err := database.DB.Where("token = ?", input.Token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or used token", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if time.Now().After(reset.ExpiresAt) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Token expired", nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Customer{}).Where("id = ?", reset.CustomerId).
			Update("password", hash).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Password updated"})
}
