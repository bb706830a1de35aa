package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errEmptyCart   = status.Error(codes.InvalidArgument, "Cart is empty. Add items to cart before placing an order.")
	errCartChanged = status.Error(codes.InvalidArgument, "Cart changed while the order was being placed. Please try again.")
	errCrewOnly    = status.Error(codes.InvalidArgument, "Delivery crew can only update the status field.")
	errNoOrder     = status.Error(codes.NotFound, "Order not found.")
)

// OrderPatch is a decoded JSON object keyed by field name. Keeping the raw
// keys lets the service enforce which fields a role may send.
type OrderPatch map[string]json.RawMessage

var orderOrderings = map[string]string{
	"date":   "date ASC",
	"-date":  "date DESC",
	"total":  "total ASC",
	"-total": "total DESC",
}

type OrderService struct {
	db     *gorm.DB
	txOpts *sql.TxOptions
	events events.Publisher
	logger *zap.Logger
}

func NewOrderService(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:     db,
		events: publisherOrDiscard(pub),
		logger: logger.Named("order-service"),
	}
}

// WithTxOptions sets the isolation used when placing orders.
func (s *OrderService) WithTxOptions(opts *sql.TxOptions) *OrderService {
	s.txOpts = opts
	return s
}

// scoped limits orders to what the caller may see: managers see every
// order, delivery crew the orders assigned to them, everyone else their own.
func (s *OrderService) scoped(ctx context.Context, caller auth.Caller) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Order{})
	switch {
	case caller.IsManager():
	case caller.IsDeliveryCrew():
		q = q.Where("delivery_crew_id = ?", caller.UserID)
	default:
		q = q.Where("user_id = ?", caller.UserID)
	}
	return q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("DeliveryCrew")
}

func (s *OrderService) List(ctx context.Context, caller auth.Caller, ordering string) ([]models.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	q := s.scoped(ctx, caller)
	if ordering != "" {
		order, ok := orderOrderings[ordering]
		if !ok {
			return nil, invalid("Unsupported ordering %q.", ordering)
		}
		q = q.Order(order)
	}

	orders := []models.Order{}
	if err := q.Order("id ASC").Find(&orders).Error; err != nil {
		return nil, internal(s.logger, "failed to list orders", err)
	}
	return orders, nil
}

// Get returns NotFound both for missing orders and for orders outside the
// caller's scope.
func (s *OrderService) Get(ctx context.Context, caller auth.Caller, id uint) (*models.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.find(ctx, caller, id)
}

func (s *OrderService) find(ctx context.Context, caller auth.Caller, id uint) (*models.Order, error) {
	var order models.Order
	found, err := first(ctx, s.scoped(ctx, caller).Where("orders.id = ?", id), &order)
	if err != nil {
		return nil, internal(s.logger, "failed to get order", err)
	}
	if !found {
		return nil, errNoOrder
	}
	return &order, nil
}

// load reads an order the caller has just written, ignoring scope.
func (s *OrderService) load(ctx context.Context, id uint) (*models.Order, error) {
	return s.find(ctx, auth.Caller{Roles: []models.Role{models.RoleManager}}, id)
}

// Place turns the caller's cart into an order. Reading the cart, creating
// the order and its lines, and clearing the cart happen in one transaction.
func (s *OrderService) Place(ctx context.Context, caller auth.Caller) (*models.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("MenuItem").
			Where("user_id = ?", caller.UserID).
			Order("id ASC").
			Find(&lines).Error
		if err != nil {
			return wrap("read cart", err)
		}
		if len(lines) == 0 {
			return errEmptyCart
		}

		total := decimal.Zero
		ids := make([]uint, len(lines))
		items := make([]models.OrderItem, len(lines))
		for i, line := range lines {
			total = total.Add(line.Price)
			ids[i] = line.ID
			items[i] = models.OrderItem{
				MenuItemID: line.MenuItemID,
				Title:      line.MenuItem.Title,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
			}
		}

		order = models.Order{
			UserID: caller.UserID,
			Status: false,
			Total:  total,
			Items:  items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return wrap("create order", err)
		}

		res := tx.Where("user_id = ? AND id IN ?", caller.UserID, ids).Delete(&models.CartItem{})
		if res.Error != nil {
			return wrap("clear cart", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return errCartChanged
		}
		return nil
	}, s.txOpts)
	if err != nil {
		if errors.Is(err, errEmptyCart) || errors.Is(err, errCartChanged) {
			return nil, err
		}
		return nil, internal(s.logger, "failed to place order", err)
	}

	s.logger.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", caller.UserID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("line_count", len(order.Items)))

	s.events.Publish(&events.Event{
		Service:  "order-service",
		Action:   "place_order",
		EntityID: idString(order.ID),
		ActorID:  caller.UserID,
		Data: map[string]interface{}{
			"total":      order.Total.StringFixed(2),
			"line_count": len(order.Items),
		},
	})

	return s.load(ctx, order.ID)
}

// Replace overwrites the mutable fields (status, delivery_crew); absent
// fields are reset. Managers only.
func (s *OrderService) Replace(ctx context.Context, caller auth.Caller, id uint, patch OrderPatch) (*models.Order, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	order, err := s.find(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.managerUpdate(ctx, caller, order, patch, true)
}

// Patch applies a partial update. Managers may change status and
// delivery_crew; delivery crew may send status and nothing else. Scope
// follows the Manager role, so a user with both roles reaches every order.
func (s *OrderService) Patch(ctx context.Context, caller auth.Caller, id uint, patch OrderPatch) (*models.Order, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	order, err := s.find(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	// Delivery crew membership wins over Manager here, so a user holding both
	// roles is still limited to the status field.
	switch {
	case caller.IsDeliveryCrew():
		raw, ok := patch["status"]
		if !ok || len(patch) != 1 {
			return nil, errCrewOnly
		}
		delivered, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		return s.apply(ctx, caller, order, map[string]interface{}{"status": delivered})
	case caller.IsManager():
		return s.managerUpdate(ctx, caller, order, patch, false)
	default:
		return nil, auth.Require(caller, models.RoleManager)
	}
}

func (s *OrderService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return err
	}
	order, err := s.find(ctx, caller, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return wrap("delete order lines", err)
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
	if err != nil {
		return internal(s.logger, "failed to delete order", err)
	}

	s.events.Publish(&events.Event{
		Service:  "order-service",
		Action:   "delete_order",
		EntityID: idString(order.ID),
		ActorID:  caller.UserID,
		Data:     map[string]interface{}{"user_id": order.UserID},
	})
	return nil
}

func (s *OrderService) managerUpdate(ctx context.Context, caller auth.Caller, order *models.Order, patch OrderPatch, full bool) (*models.Order, error) {
	updates := map[string]interface{}{}

	if raw, ok := patch["status"]; ok {
		delivered, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		updates["status"] = delivered
	} else if full {
		updates["status"] = false
	}

	if raw, ok := patch["delivery_crew"]; ok {
		crewID, err := parseUserRef(raw)
		if err != nil {
			return nil, err
		}
		if crewID == nil {
			updates["delivery_crew_id"] = nil
		} else {
			if err := s.checkCrew(ctx, *crewID); err != nil {
				return nil, err
			}
			updates["delivery_crew_id"] = *crewID
		}
	} else if full {
		updates["delivery_crew_id"] = nil
	}

	if len(updates) == 0 {
		return order, nil
	}
	return s.apply(ctx, caller, order, updates)
}

func (s *OrderService) apply(ctx context.Context, caller auth.Caller, order *models.Order, updates map[string]interface{}) (*models.Order, error) {
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	if err != nil {
		return nil, internal(s.logger, "failed to update order", err)
	}

	data := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		data[k] = v
	}
	s.events.Publish(&events.Event{
		Service:  "order-service",
		Action:   "update_order",
		EntityID: idString(order.ID),
		ActorID:  caller.UserID,
		Data:     data,
	})

	return s.load(ctx, order.ID)
}

// checkCrew requires the assignee to exist and hold the Delivery crew role.
func (s *OrderService) checkCrew(ctx context.Context, userID uint) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, models.RoleDeliveryCrew).
		Count(&count).Error
	if err != nil {
		return internal(s.logger, "failed to check delivery crew", err)
	}
	if count == 0 {
		return invalid("delivery_crew: User %d is not a member of the Delivery crew group.", userID)
	}
	return nil
}

// parseStatus accepts JSON booleans, 0/1 and their string forms.
func parseStatus(raw json.RawMessage) (bool, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, invalid("status: Must be a valid boolean.")
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		switch t {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case string:
		switch strings.ToLower(t) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return false, invalid("status: Must be a valid boolean.")
}

// parseUserRef reads a user id or null.
func parseUserRef(raw json.RawMessage) (*uint, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, invalid("delivery_crew: Incorrect type. Expected pk value.")
	}
	var id uint64
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if t < 1 || t != float64(uint64(t)) {
			return nil, invalid("delivery_crew: Incorrect type. Expected pk value.")
		}
		id = uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil || n == 0 {
			return nil, invalid("delivery_crew: Incorrect type. Expected pk value.")
		}
		id = n
	default:
		return nil, invalid("delivery_crew: Incorrect type. Expected pk value.")
	}
	u := uint(id)
	return &u, nil
}
