package helper

import (
	"log"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/model"
)

// IncrementDineInCount records one dine-in visit. Called once per initiated
// dine-in order, before pricing, because the count feeds elite eligibility
// independent of whether the order is later paid or cancelled.
func IncrementDineInCount(customer *model.Customer) error {
	customer.DineInCount++
	if err := database.DB.Model(customer).Update("dine_in_count", customer.DineInCount).Error; err != nil {
		return err
	}
	if EliteEligible(customer) {
		log.Printf("customer %s is eligible for elite membership (%d dine-ins)", customer.PublicCode, customer.DineInCount)
	}
	return nil
}

// EliteEligible reports whether the customer earned a free elite upgrade
func EliteEligible(customer *model.Customer) bool {
	return customer.DineInCount >= constants.ELITE_DINE_IN_THRESHOLD && !customer.IsElite
}

// SubscribeToElite activates elite membership when the fee was paid or the
// dine-in threshold was reached. Activation grants one month.
func SubscribeToElite(customer *model.Customer, paid bool) (bool, error) {
	if !paid && customer.DineInCount < constants.ELITE_DINE_IN_THRESHOLD {
		return false, nil
	}

	customer.IsElite = true
	customer.SubscriptionActive = true
	customer.MonthsRemaining = 1
	if err := database.DB.Model(customer).Updates(map[string]interface{}{
		"is_elite":            true,
		"subscription_active": true,
		"months_remaining":    1,
	}).Error; err != nil {
		return false, err
	}
	return true, nil
}
