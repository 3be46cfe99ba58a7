package consumer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// PrepTracker aggregates what the kitchen has to cook, across workers.
type PrepTracker struct {
	mu             sync.Mutex
	totalOrders    int64
	dishQuantities map[string]int64
	dishNames      map[string]string
	log            *logrus.Logger
}

func NewPrepTracker(log *logrus.Logger) *PrepTracker {
	return &PrepTracker{
		dishQuantities: make(map[string]int64),
		dishNames:      make(map[string]string),
		log:            log,
	}
}

// RecordOrder adds an order's lines to the prep totals.
func (t *PrepTracker) RecordOrder(orderID string, items []models.OrderItem) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalOrders++
	for _, item := range items {
		t.dishQuantities[item.DishID] += int64(item.Quantity)
		t.dishNames[item.DishID] = item.DishName
	}

	t.log.WithFields(logrus.Fields{
		"order_id":     orderID,
		"total_orders": t.totalOrders,
	}).Info("recorded kitchen ticket")
}

// PrintSummary prints the prep totals on shutdown.
func (t *PrepTracker) PrintSummary() {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("KITCHEN SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total orders processed: %d\n", t.totalOrders)
	for dishID, qty := range t.dishQuantities {
		fmt.Printf("  %s: %d portions\n", t.dishNames[dishID], qty)
	}
	fmt.Println(strings.Repeat("=", 60))
}

func (t *PrepTracker) TotalOrders() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalOrders
}

func (t *PrepTracker) DishQuantity(dishID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dishQuantities[dishID]
}
