package database

import (
	"fmt"
	"log"

	"restaurant_pos/constants"
	"restaurant_pos/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}

	cashiers := []model.Cashier{
		{PublicCode: "CH001", Name: "Admin", Email: "admin@restaurant.local", Password: HashPassword, Role: constants.ROLE_ADMIN, Active: true, Shift: "DAY"},
		{PublicCode: "CH002", Name: "Counter Cashier", Email: "cashier@restaurant.local", Password: HashPassword, Role: constants.ROLE_CASHIER, Active: true, Shift: "DAY", Salary: 4500},
	}
	for _, cashier := range cashiers {
		if err := db.Where(model.Cashier{Email: cashier.Email}).FirstOrCreate(&cashier).Error; err != nil {
			log.Println("failed to seed cashier:", cashier.Email, "error:", err)
		}
	}

	menuItems := []model.MenuItem{
		{Name: "Burger", Price: 50.0, Category: "MAIN"},
		{Name: "Fries", Price: 20.0, Category: "SIDE"},
		{Name: "Grilled Chicken", Price: 85.0, Category: "MAIN"},
		{Name: "Koshari", Price: 35.0, Category: "MAIN"},
		{Name: "Soda", Price: 10.0, Category: "DRINK"},
		{Name: "Mango Juice", Price: 18.0, Category: "DRINK"},
		{Name: "Om Ali", Price: 28.0, Category: "DESSERT"},
	}
	for _, item := range menuItems {
		item.Slug = slug.Make(item.Name)
		item.Available = true
		if err := db.Where(model.MenuItem{Slug: item.Slug}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}

	capacities := []int{2, 2, 4, 4, 4, 6, 6, 8}
	for i, capacity := range capacities {
		table := model.Table{Number: i + 1, Capacity: capacity, Status: model.TableAvailable}
		if err := db.Where(model.Table{Number: table.Number}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed table:", table.Number, "error:", err)
		}
	}

	fmt.Println("Seed data ready")
}
