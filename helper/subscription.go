package helper

import (
	"log"

	"restaurant_pos/database"
	"restaurant_pos/model"

	"github.com/go-co-op/gocron/v2"
)

var subscriptionScheduler gocron.Scheduler

// ExpireSubscriptions burns one month off every active elite subscription
// and deactivates the ones that ran out
func ExpireSubscriptions() {
	log.Println("[CRON] ExpireSubscriptions triggered")

	db := database.DB
	var customers []model.Customer
	if err := db.Where("subscription_active = ?", true).Find(&customers).Error; err != nil {
		log.Printf("subscription scan failed: %v", err)
		return
	}

	for _, customer := range customers {
		if customer.MonthsRemaining > 0 {
			customer.MonthsRemaining--
		}
		if customer.MonthsRemaining <= 0 {
			customer.SubscriptionActive = false
			log.Printf("elite subscription expired for %s", customer.PublicCode)
		}
		if err := db.Model(&customer).Updates(map[string]interface{}{
			"months_remaining":    customer.MonthsRemaining,
			"subscription_active": customer.SubscriptionActive,
		}).Error; err != nil {
			log.Printf("subscription update failed for %s: %v", customer.PublicCode, err)
		}
	}
}

// StartSubscriptionScheduler runs the expiry on the first of every month
func StartSubscriptionScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	subscriptionScheduler = s

	_, err = s.NewJob(
		gocron.MonthlyJob(
			1,
			gocron.NewDaysOfTheMonth(1),
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 10, 0),
			),
		),
		gocron.NewTask(ExpireSubscriptions),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("subscription expiry scheduler started (monthly, 00:10)")
}

func StopSubscriptionScheduler() {
	if subscriptionScheduler != nil {
		_ = subscriptionScheduler.Shutdown()
	}
}
