package helper

import (
	"errors"
	"fmt"
	"os"
	"time"

	"restaurant_pos/database"
	"restaurant_pos/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetCashierByEmail(e string) (*model.Cashier, error) {
	db := database.DB
	var cashier model.Cashier
	if err := db.Where(&model.Cashier{Email: e}).First(&cashier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cashier, nil
}

func GetCustomerByUsername(u string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where("user_name = ? OR public_code = ?", u, u).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["staffId"] = tokenClaim.StaffId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["staffId"] = tokenClaim.StaffId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

func claimsFromContext(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token claims")
	}
	return claims, nil
}

// GetCustomerFromToken resolves the logged-in customer behind Protected()
func GetCustomerFromToken(c *fiber.Ctx) (*model.Customer, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return nil, err
	}
	raw, ok := claims["customerId"].(float64)
	if !ok || raw == 0 {
		return nil, errors.New("not a customer token")
	}

	var customer model.Customer
	if err := database.DB.First(&customer, uint(raw)).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCashierFromToken resolves the logged-in staff member behind Protected()
func GetCashierFromToken(c *fiber.Ctx) (*model.Cashier, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return nil, err
	}
	raw, ok := claims["staffId"].(float64)
	if !ok || raw == 0 {
		return nil, errors.New("not a staff token")
	}

	var cashier model.Cashier
	if err := database.DB.First(&cashier, uint(raw)).Error; err != nil {
		return nil, err
	}
	return &cashier, nil
}
