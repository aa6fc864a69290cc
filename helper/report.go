package helper

import (
	"log"
	"time"

	"restaurant_pos/database"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/robfig/cron/v3"
)

var reportCron *cron.Cron

// DailySalesReport mails the manager a one-day revenue summary
func DailySalesReport() {
	log.Println("[CRON] DailySalesReport triggered")

	db := database.DB
	dayStart := time.Now().Truncate(24 * time.Hour)

	var orders []model.Order
	if err := db.Where("created_at >= ? AND status = ?", dayStart, model.StatusComplete).
		Find(&orders).Error; err != nil {
		log.Printf("sales report query failed: %v", err)
		return
	}

	var revenue, discounts float64
	byMode := map[model.FulfilmentMode]int{}
	for _, order := range orders {
		revenue += order.Total
		discounts += order.DiscountAmount
		byMode[order.Mode]++
	}

	utils.SendDailySalesEmail(utils.DailySalesData{
		Date:       dayStart.Format("2006-01-02"),
		Orders:     len(orders),
		Revenue:    revenue,
		Discounts:  discounts,
		DineIn:     byMode[model.DineIn],
		Takeaway:   byMode[model.Takeaway],
		Deliveries: byMode[model.OnlineDelivery],
	})
}

// StartDailyReportCron schedules the sales summary at 23:00 every day
func StartDailyReportCron() {
	reportCron = cron.New()
	if _, err := reportCron.AddFunc("0 23 * * *", DailySalesReport); err != nil {
		log.Fatal(err)
	}
	reportCron.Start()
	log.Println("daily sales report cron started (23:00)")
}

func StopDailyReportCron() {
	if reportCron != nil {
		reportCron.Stop()
	}
}
