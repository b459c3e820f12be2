package services

import (
	"fmt"
	"time"

	"github.com/trusttaste/booking-core/events"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/notifier"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

const reminderLead = 30 * time.Minute

// BookingService composes the resolver, conflict checker and gatekeeper
// into the public booking operations. Side effects that the original
// system fired implicitly on save happen here as explicit steps.
type BookingService struct {
	DB         *gorm.DB
	Resolver   *CustomerResolver
	Conflicts  *ConflictChecker
	Gatekeeper *VerificationGatekeeper
	Notifier   notifier.Notifier
	BaseURL    string

	locks *SlotLocker
}

func NewBookingService(db *gorm.DB, n notifier.Notifier, baseURL string) *BookingService {
	return &BookingService{
		DB:         db,
		Resolver:   NewCustomerResolver(),
		Conflicts:  NewConflictChecker(),
		Gatekeeper: NewVerificationGatekeeper(),
		Notifier:   n,
		BaseURL:    baseURL,
		locks:      NewSlotLocker(),
	}
}

type ReservationInput struct {
	TableID      uint   `json:"table_id"`
	Date         string `json:"date"`
	FromTime     string `json:"from_time"`
	ToTime       string `json:"to_time"`
	GuestNo      int    `json:"guest_no"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Allergy      string `json:"allergy"`
}

// CreateReservation resolves the customer, validates the slot under the
// per-(table,date) lock, persists the row, computes the verified flag
// and fires exactly one creation notification.
func (bs *BookingService) CreateReservation(restaurant *models.Restaurant, in ReservationInput) (*models.Reservation, error) {
	if err := validateReservationInput(&in); err != nil {
		return nil, err
	}

	var table models.Table
	if err := bs.DB.Where("id = ? AND restaurant_id = ?", in.TableID, restaurant.ID).
		First(&table).Error; err != nil {
		return nil, ErrNotFound
	}

	lock := bs.locks.Lock(in.TableID, in.Date)
	defer lock.Unlock()

	var reservation models.Reservation
	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := bs.Resolver.Resolve(tx, in.Phone, in.CustomerName, in.Email, in.Address)
		if err != nil {
			return err
		}

		conflict, err := bs.Conflicts.FindConflict(tx, restaurant, in.TableID, in.Date, in.FromTime, in.ToTime)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &SlotConflictError{
				TableID:      in.TableID,
				Date:         in.Date,
				FromTime:     in.FromTime,
				ToTime:       in.ToTime,
				ExistingFrom: conflict.FromTime,
				ExistingTo:   conflict.ToTime,
			}
		}

		reservation = models.Reservation{
			TableID:    in.TableID,
			CustomerID: &customer.ID,
			Customer:   customer,
			GuestNo:    in.GuestNo,
			Status:     in.Status,
			Date:       in.Date,
			FromTime:   in.FromTime,
			ToTime:     in.ToTime,
			Allergy:    in.Allergy,
			Verified:   false,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	verified, kind, err := bs.Gatekeeper.DecideReservation(bs.DB, *reservation.CustomerID, reservation.ID)
	if err != nil {
		return nil, err
	}
	if verified {
		if err := bs.DB.Model(&reservation).Update("verified", true).Error; err != nil {
			return nil, err
		}
		reservation.Verified = true
	}

	bs.dispatch(notifier.Event{
		Kind:          kind,
		BookingKind:   notifier.BookingKindReservation,
		BookingID:     reservation.ID,
		RestaurantID:  restaurant.ID,
		CustomerName:  reservation.Customer.Name,
		CustomerPhone: reservation.Customer.Phone,
		CustomerEmail: reservation.Customer.Email,
		VerifyURL:     bs.verifyURL(notifier.BookingKindReservation, reservation.ID, verified),
	})
	if verified {
		bs.emitReminder(restaurant, &reservation)
	}

	events.BroadcastReservationCreate(reservation)
	utils.InfoLogger.Printf("Reservation %d created on table %d (%s %s-%s, verified=%t)",
		reservation.ID, reservation.TableID, reservation.Date, reservation.FromTime, reservation.ToTime, reservation.Verified)
	return &reservation, nil
}

// VerifyReservation flips the verified flag via the public link.
// Idempotent: an already-verified reservation is returned unchanged
// without a second notification.
func (bs *BookingService) VerifyReservation(restaurantID, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	query := bs.DB.Preload("Customer")
	if restaurantID != 0 {
		query = query.Joins("JOIN tables ON tables.id = reservations.table_id").
			Where("tables.restaurant_id = ?", restaurantID)
	}
	if err := query.First(&reservation, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if reservation.Verified {
		return &reservation, nil
	}

	// resolve the restaurant first so a lookup failure cannot surface
	// after the flag was already persisted
	var restaurant models.Restaurant
	if err := bs.DB.
		Joins("JOIN tables ON tables.restaurant_id = restaurants.id").
		Where("tables.id = ?", reservation.TableID).
		First(&restaurant).Error; err != nil {
		return nil, err
	}

	if err := bs.DB.Model(&reservation).Update("verified", true).Error; err != nil {
		return nil, err
	}
	reservation.Verified = true

	event := notifier.Event{
		Kind:         notifier.BookingConfirmed,
		BookingKind:  notifier.BookingKindReservation,
		BookingID:    reservation.ID,
		RestaurantID: restaurant.ID,
	}
	if reservation.Customer != nil {
		event.CustomerName = reservation.Customer.Name
		event.CustomerPhone = reservation.Customer.Phone
		event.CustomerEmail = reservation.Customer.Email
	}
	bs.dispatch(event)
	bs.emitReminder(&restaurant, &reservation)

	events.BroadcastBookingVerified(notifier.BookingKindReservation, reservation.ID)
	return &reservation, nil
}

type OrderLineInput struct {
	ItemID              uint    `json:"item_id"`
	Quantity            int     `json:"quantity"`
	Extras              string  `json:"extras"`
	ExtrasPrice         float64 `json:"extras_price"`
	SpecialInstructions string  `json:"special_instructions"`
}

type OrderInput struct {
	CustomerName string           `json:"customer_name"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Address      string           `json:"address"`
	OrderType    string           `json:"order_type"`
	OrderNotes   string           `json:"order_notes"`
	Allergy      string           `json:"allergy"`
	Lines        []OrderLineInput `json:"order_items"`
}

// CreateOrder follows the reservation shape but substitutes price
// computation for the conflict check. Line items snapshot the catalog
// item at order time.
func (bs *BookingService) CreateOrder(restaurant *models.Restaurant, in OrderInput) (*models.Order, error) {
	if err := validateOrderInput(&in); err != nil {
		return nil, err
	}

	var order models.Order
	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := bs.Resolver.Resolve(tx, in.Phone, in.CustomerName, in.Email, in.Address)
		if err != nil {
			return err
		}

		var total float64
		var lines []models.OrderItem
		for _, line := range in.Lines {
			var item models.Item
			if err := tx.Where("id = ? AND restaurant_id = ?", line.ItemID, restaurant.ID).
				First(&item).Error; err != nil {
				return fmt.Errorf("item %d: %w", line.ItemID, ErrNotFound)
			}

			orderItem := models.OrderItem{
				ItemID:              item.ID,
				ItemName:            item.ItemName,
				Price:               item.Price,
				Discount:            item.Discount,
				Quantity:            line.Quantity,
				Extras:              line.Extras,
				ExtrasPrice:         line.ExtrasPrice,
				SpecialInstructions: line.SpecialInstructions,
			}
			total += orderItem.LineTotal()
			lines = append(lines, orderItem)
		}

		var deliveryFee float64
		if in.OrderType == models.OrderTypeDelivery {
			deliveryFee = restaurant.DeliveryFee
		}

		order = models.Order{
			RestaurantID: restaurant.ID,
			CustomerID:   &customer.ID,
			Customer:     customer,
			Status:       models.OrderPending,
			TotalPrice:   total + deliveryFee,
			OrderType:    in.OrderType,
			DeliveryFee:  deliveryFee,
			OrderNotes:   in.OrderNotes,
			Allergy:      in.Allergy,
			Verified:     false,
			OrderItems:   lines,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	verified, kind, err := bs.Gatekeeper.DecideOrder(bs.DB, *order.CustomerID, order.ID)
	if err != nil {
		return nil, err
	}
	if verified {
		if err := bs.DB.Model(&order).Update("verified", true).Error; err != nil {
			return nil, err
		}
		order.Verified = true
	}

	bs.dispatch(notifier.Event{
		Kind:          kind,
		BookingKind:   notifier.BookingKindOrder,
		BookingID:     order.ID,
		RestaurantID:  restaurant.ID,
		CustomerName:  order.Customer.Name,
		CustomerPhone: order.Customer.Phone,
		CustomerEmail: order.Customer.Email,
		VerifyURL:     bs.verifyURL(notifier.BookingKindOrder, order.ID, verified),
	})

	events.BroadcastOrderCreate(order)
	utils.InfoLogger.Printf("Order %d created (total=%.2f, verified=%t)", order.ID, order.TotalPrice, order.Verified)
	return &order, nil
}

// VerifyOrder is the order-side counterpart of VerifyReservation.
func (bs *BookingService) VerifyOrder(restaurantID, id uint) (*models.Order, error) {
	var order models.Order
	query := bs.DB.Preload("Customer").Preload("OrderItems")
	if restaurantID != 0 {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if err := query.First(&order, id).Error; err != nil {
		return nil, ErrNotFound
	}

	if order.Verified {
		return &order, nil
	}

	if err := bs.DB.Model(&order).Update("verified", true).Error; err != nil {
		return nil, err
	}
	order.Verified = true

	event := notifier.Event{
		Kind:         notifier.BookingConfirmed,
		BookingKind:  notifier.BookingKindOrder,
		BookingID:    order.ID,
		RestaurantID: order.RestaurantID,
	}
	if order.Customer != nil {
		event.CustomerName = order.Customer.Name
		event.CustomerPhone = order.Customer.Phone
		event.CustomerEmail = order.Customer.Email
	}
	bs.dispatch(event)

	events.BroadcastBookingVerified(notifier.BookingKindOrder, order.ID)
	return &order, nil
}

// MarkTableOutOfService creates the full-day marker reservation that
// blocks every slot on the date. Operator action, so the conflict check
// is skipped; the slot lock still serializes it against creations.
func (bs *BookingService) MarkTableOutOfService(restaurant *models.Restaurant, tableID uint, date string) (*models.Reservation, error) {
	if !utils.ValidDate(date) {
		return nil, validationf("invalid date %q: expected YYYY-MM-DD", date)
	}

	var table models.Table
	if err := bs.DB.Where("id = ? AND restaurant_id = ?", tableID, restaurant.ID).
		First(&table).Error; err != nil {
		return nil, ErrNotFound
	}

	lock := bs.locks.Lock(tableID, date)
	defer lock.Unlock()

	reservation := models.Reservation{
		TableID:  tableID,
		Status:   models.ReservationReservedStatus,
		Date:     date,
		FromTime: models.FullDayFrom,
		ToTime:   models.FullDayTo,
		Verified: true,
	}
	if err := bs.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}

	events.BroadcastReservationCreate(reservation)
	utils.InfoLogger.Printf("Table %d marked out of service on %s", tableID, date)
	return &reservation, nil
}

// dispatch sends one event to the notification collaborator and keeps a
// best-effort dashboard log. Dispatch failure never rolls back the
// booking.
func (bs *BookingService) dispatch(event notifier.Event) {
	if err := bs.Notifier.Notify(event); err != nil {
		utils.ErrorLogger.Printf("Notification dispatch failed (%s %s %d): %v",
			event.Kind, event.BookingKind, event.BookingID, err)
	}

	record := models.Notification{
		Kind:        string(event.Kind),
		BookingKind: event.BookingKind,
		BookingID:   event.BookingID,
		Message:     fmt.Sprintf("%s for %s %d", event.Kind, event.BookingKind, event.BookingID),
	}
	if err := bs.DB.Create(&record).Error; err != nil {
		utils.ErrorLogger.Printf("Error recording notification: %v", err)
	}
}

// emitReminder states the "remind at T-30min" intent for a confirmed
// reservation. The scheduled dispatch itself lives with the
// collaborator consuming the event.
func (bs *BookingService) emitReminder(restaurant *models.Restaurant, reservation *models.Reservation) {
	start, err := utils.CombineDateClock(reservation.Date, reservation.FromTime, restaurant.Location())
	if err != nil {
		return
	}
	remindAt := start.Add(-reminderLead)
	if !remindAt.After(time.Now()) {
		return
	}

	event := notifier.Event{
		Kind:         notifier.ReservationReminder,
		BookingKind:  notifier.BookingKindReservation,
		BookingID:    reservation.ID,
		RestaurantID: restaurant.ID,
		RemindAt:     &remindAt,
	}
	if reservation.Customer != nil {
		event.CustomerName = reservation.Customer.Name
		event.CustomerPhone = reservation.Customer.Phone
		event.CustomerEmail = reservation.Customer.Email
	}
	bs.dispatch(event)
}

func (bs *BookingService) verifyURL(bookingKind string, id uint, verified bool) string {
	if verified {
		return ""
	}
	return fmt.Sprintf("%s/public/%ss/verify/%d", bs.BaseURL, bookingKind, id)
}

func validateReservationInput(in *ReservationInput) error {
	if in.TableID == 0 {
		return validationf("table is required")
	}
	if in.Phone == "" {
		return validationf("phone is required")
	}
	if in.GuestNo <= 0 {
		return validationf("guest_no must be positive")
	}
	if !utils.ValidDate(in.Date) {
		return validationf("invalid date %q: expected YYYY-MM-DD", in.Date)
	}
	if !utils.ValidClock(in.FromTime) {
		return validationf("invalid from_time %q: expected HH:MM:SS", in.FromTime)
	}
	if !utils.ValidClock(in.ToTime) {
		return validationf("invalid to_time %q: expected HH:MM:SS", in.ToTime)
	}
	if in.FromTime >= in.ToTime {
		return validationf("from_time must be before to_time")
	}
	switch in.Status {
	case "":
		in.Status = models.ReservationReservedStatus
	case models.ReservationReservedStatus, models.ReservationWalkIn:
	default:
		return validationf("status must be %q or %q", models.ReservationReservedStatus, models.ReservationWalkIn)
	}
	return nil
}

func validateOrderInput(in *OrderInput) error {
	if in.Phone == "" {
		return validationf("phone is required")
	}
	if len(in.Lines) == 0 {
		return validationf("order_items must not be empty")
	}
	for i, line := range in.Lines {
		if line.ItemID == 0 {
			return validationf("order_items[%d]: item_id is required", i)
		}
		if line.Quantity <= 0 {
			return validationf("order_items[%d]: quantity must be positive", i)
		}
	}
	switch in.OrderType {
	case "":
		in.OrderType = models.OrderTypeDelivery
	case models.OrderTypeDelivery, models.OrderTypePickup:
	default:
		return validationf("order_type must be %q or %q", models.OrderTypeDelivery, models.OrderTypePickup)
	}
	return nil
}
