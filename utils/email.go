package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

// OrderConfirmationData fills the confirmation mail for delivery orders
type OrderConfirmationData struct {
	OrderCode       string
	Items           []string
	Subtotal        float64
	Discount        float64
	Total           float64
	DeliveryAddress string
}

func smtpDialer() (*gomail.Dialer, string, bool) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	if host == "" || from == "" {
		return nil, "", false
	}
	port, _ := strconv.Atoi(portStr)
	return gomail.NewDialer(host, port, username, password), from, true
}

// SendOrderConfirmationEmail mails the delivery confirmation (async so the
// intake response is not delayed by SMTP)
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	go func() {
		dialer, from, ok := smtpDialer()
		if !ok {
			log.Println("smtp not configured, skipping order confirmation mail")
			return
		}

		body := fmt.Sprintf(
			"Your order %s is confirmed.\n\nItems:\n%s\n\nSubtotal: EGP %.2f\nDiscount: EGP %.2f\nTotal: EGP %.2f\n\nDelivery to: %s\n",
			data.OrderCode,
			strings.Join(data.Items, "\n"),
			data.Subtotal,
			data.Discount,
			data.Total,
			data.DeliveryAddress,
		)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Order confirmation "+data.OrderCode)
		m.SetBody("text/plain", body)

		if err := dialer.DialAndSend(m); err != nil {
			log.Printf("order confirmation mail failed for %s: %v", data.OrderCode, err)
		}
	}()
}

// DailySalesData fills the nightly manager report
type DailySalesData struct {
	Date       string
	Orders     int
	Revenue    float64
	Discounts  float64
	DineIn     int
	Takeaway   int
	Deliveries int
}

// SendDailySalesEmail mails the end-of-day summary to MANAGER_EMAIL
func SendDailySalesEmail(data DailySalesData) {
	to := os.Getenv("MANAGER_EMAIL")
	if to == "" {
		log.Println("MANAGER_EMAIL not set, skipping daily sales mail")
		return
	}

	dialer, from, ok := smtpDialer()
	if !ok {
		log.Println("smtp not configured, skipping daily sales mail")
		return
	}

	body := fmt.Sprintf(
		"Sales for %s\n\nOrders: %d\nRevenue: EGP %.2f\nDiscounts given: EGP %.2f\n\nDine-in: %d\nTakeaway: %d\nDeliveries: %d\n",
		data.Date, data.Orders, data.Revenue, data.Discounts,
		data.DineIn, data.Takeaway, data.Deliveries,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Daily sales report "+data.Date)
	m.SetBody("text/plain", body)

	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("daily sales mail failed: %v", err)
	}
}
