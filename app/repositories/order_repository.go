package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

// ErrStaleStatus means the order's status changed between read and write.
var ErrStaleStatus = errors.New("repositories: order status changed concurrently")

// MonthTotal is the completed revenue of one "YYYY-MM" month.
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// CategoryTotal is the completed line revenue attributed to one category.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// OrderRepository is the Order Ledger.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Place creates an order for userID with one line per product id, each
// priced at the product's current price. Prices are read inside the same
// transaction that writes the order.
func (r *OrderRepository) Place(ctx context.Context, userID uint, productIDs []uint, at time.Time) (models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := orm.On(tx).Where("id IN ?", productIDs).Get(&products); err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return ErrMissingRelation
		}

		price := make(map[uint]decimal.Decimal, len(products))
		for _, p := range products {
			price[p.ID] = p.Price
		}

		lines := make([]models.OrderLine, len(productIDs))
		for i, id := range productIDs {
			lines[i] = models.OrderLine{ProductID: id, Price: price[id]}
		}

		order = models.Order{
			UserID:      userID,
			OrderDate:   at.UTC(),
			Status:      models.StatusPending,
			TotalAmount: models.SumLines(lines),
			Lines:       lines,
		}
		return tx.Create(&order).Error
	})
	return order, wrap("place order", err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := orm.On(r.db.WithContext(ctx)).Preload("Lines").Where("orders.id = ?", id).First(&o)
	return o, wrap("find order", err)
}

// UpdateStatus moves the order from one status to another, touching no
// other column. It fails with ErrStaleStatus if the order is no longer in from.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return wrap("update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *OrderRepository) completed(ctx context.Context) *gorm.DB {
	return orm.On(r.db).WithContext(ctx).Model(&models.Order{}).Where("orders.status = ?", models.StatusCompleted).Builder()
}

// RevenueTotal sums the totals of all completed orders.
func (r *OrderRepository) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	defer metrics.ObserveDBQuery("revenue_total", time.Now())

	var row struct{ Total decimal.Decimal }
	err := r.completed(ctx).Select("COALESCE(SUM(orders.total_amount), 0) AS total").Scan(&row).Error
	return row.Total, wrap("revenue total", err)
}

// MonthlyTotals sums completed order totals per calendar month for orders
// dated within [from, to]. Months without orders are absent.
func (r *OrderRepository) MonthlyTotals(ctx context.Context, from, to time.Time) ([]MonthTotal, error) {
	defer metrics.ObserveDBQuery("sales_series", time.Now())

	month := database.MonthExpr(r.db.Dialector.Name(), "orders.order_date")

	var rows []MonthTotal
	err := r.completed(ctx).
		Select(month+" AS month, COALESCE(SUM(orders.total_amount), 0) AS total").
		Where("orders.order_date >= ? AND orders.order_date <= ?", from.UTC(), to.UTC()).
		Group(month).
		Scan(&rows).Error
	return rows, wrap("monthly totals", err)
}

// CategoryTotals sums completed line prices per category name, largest
// first. A line whose product has several categories counts toward each.
func (r *OrderRepository) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	defer metrics.ObserveDBQuery("category_breakdown", time.Now())

	var rows []CategoryTotal
	err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("categories.name AS name, COALESCE(SUM(order_lines.price), 0) AS total").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN product_extensions ON product_extensions.product_id = order_lines.product_id").
		Joins("JOIN extension_categories ON extension_categories.product_extension_id = product_extensions.id").
		Joins("JOIN categories ON categories.id = extension_categories.category_id").
		Where("orders.status = ?", models.StatusCompleted).
		Group("categories.name").
		Order("total DESC, categories.name ASC").
		Scan(&rows).Error
	return rows, wrap("category totals", err)
}
