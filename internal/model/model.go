// Package model содержит доменные сущности витрины цветочного магазина.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Внешний API принимает и отдаёт денежные суммы числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product описывает товар каталога. Цена фиксируется в строке корзины в момент добавления.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
	InStock     bool            `json:"inStock"`
}

// CartLine представляет одну позицию корзины.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// UnitPrice возвращает цену за единицу, зафиксированную при добавлении товара.
func (l CartLine) UnitPrice() decimal.Decimal {
	return l.Product.Price
}

// Amount возвращает стоимость позиции.
func (l CartLine) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// User представляет аутентифицированного покупателя, закэшированного в сессии.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName возвращает имя и фамилию пользователя.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// DiscountType описывает тип скидки промокода.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// PromoResult содержит результат проверки промокода на стороне сервера.
type PromoResult struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code"`
	DiscountType   DiscountType    `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Description    string          `json:"description"`
}

// LoyaltyTransaction описывает одно движение по бонусному счёту.
type LoyaltyTransaction struct {
	ID          string `json:"id"`
	UserEmail   string `json:"user_email"`
	Type        string `json:"type"`
	Points      int64  `json:"points"`
	Description string `json:"description"`
	OrderID     string `json:"order_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// LoyaltyAccount содержит баланс бонусного счёта и последние операции.
type LoyaltyAccount struct {
	UserEmail         string               `json:"user_email"`
	PointsBalance     int64                `json:"points_balance"`
	PointsEarnedTotal int64                `json:"points_earned_total"`
	ReferralCode      string               `json:"referral_code"`
	ReferredByCode    string               `json:"referred_by_code,omitempty"`
	CreatedAt         string               `json:"created_at"`
	Transactions      []LoyaltyTransaction `json:"transactions"`
}

// SeasonalOffer описывает сезонную акцию с промокодом.
type SeasonalOffer struct {
	ID       string `json:"id"`
	Emoji    string `json:"emoji"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Code     string `json:"code"`
	Badge    string `json:"badge"`
}

// BundleDeal описывает набор товаров со скидкой.
type BundleDeal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Emoji         string          `json:"emoji"`
	ProductIDs    []int64         `json:"product_ids"`
	PromoCode     string          `json:"promo_code"`
	SavingsPct    int             `json:"savings_pct"`
	Products      []Product       `json:"products"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	BundlePrice   decimal.Decimal `json:"bundle_price"`
}

// Offers объединяет сезонные акции и наборы.
type Offers struct {
	SeasonalOffers []SeasonalOffer `json:"seasonal_offers"`
	BundleDeals    []BundleDeal    `json:"bundle_deals"`
}

// DeliveryType описывает способ доставки заказа.
type DeliveryType string

const (
	DeliveryImmediate DeliveryType = "immediate"
	DeliveryScheduled DeliveryType = "scheduled"
)

// OrderItem описывает позицию заказа в формате внешнего API.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Customer содержит контактные данные и адрес получателя.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// OrderRequest описывает тело запроса на оформление заказа.
type OrderRequest struct {
	Items            []OrderItem     `json:"items"`
	Total            decimal.Decimal `json:"total"`
	Customer         Customer        `json:"customer"`
	DeliveryType     DeliveryType    `json:"delivery_type"`
	DeliveryDatetime *string         `json:"delivery_datetime"`
	PointsRedeemed   int64           `json:"points_redeemed"`
	PromoCode        *string         `json:"promo_code"`
	IsRecurring      bool            `json:"is_recurring"`
	RecurrenceType   *string         `json:"recurrence_type"`
}

// OrderConfirmation описывает ответ сервера на успешное оформление заказа.
type OrderConfirmation struct {
	OrderID      string `json:"orderId"`
	Status       string `json:"status"`
	PointsEarned int64  `json:"points_earned"`
	NewBalance   int64  `json:"new_balance"`
}

// OrderStatus описывает статус заказа.
type OrderStatus string

const (
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Cancellable сообщает, может ли покупатель отменить заказ в этом статусе.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusConfirmed || s == OrderStatusPreparing
}

// OrderNotification описывает отправленное уведомление по заказу.
type OrderNotification struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Status  string `json:"status"`
	SentAt  string `json:"sent_at"`
}

// PlacedOrderItem описывает позицию оформленного заказа.
type PlacedOrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Order описывает заказ из истории покупателя.
type Order struct {
	ID               string              `json:"id"`
	CustomerEmail    string              `json:"customer_email"`
	CustomerName     string              `json:"customer_name"`
	Total            decimal.Decimal     `json:"total"`
	Status           OrderStatus         `json:"status"`
	DeliveryType     DeliveryType        `json:"delivery_type"`
	DeliveryDatetime *string             `json:"delivery_datetime"`
	IsRecurring      bool                `json:"is_recurring"`
	CreatedAt        string              `json:"created_at"`
	Items            []PlacedOrderItem   `json:"items"`
	Notifications    []OrderNotification `json:"notifications"`
}

// Subscription описывает подписку на регулярную доставку букетов.
type Subscription struct {
	ID               string `json:"id"`
	CustomerEmail    string `json:"customer_email"`
	CustomerName     string `json:"customer_name"`
	Plan             string `json:"plan"`
	Style            string `json:"style"`
	FixedProductID   *int64 `json:"fixed_product_id,omitempty"`
	FixedProductName string `json:"fixed_product_name,omitempty"`
	Status           string `json:"status"`
	NextDelivery     string `json:"next_delivery"`
	Address          string `json:"address"`
	SkippedCount     int    `json:"skipped_count"`
	CreatedAt        string `json:"created_at"`
}

// SubscriptionRequest описывает тело запроса на создание подписки.
type SubscriptionRequest struct {
	CustomerEmail    string `json:"customer_email"`
	CustomerName     string `json:"customer_name"`
	Plan             string `json:"plan"`
	Style            string `json:"style"`
	FixedProductID   *int64 `json:"fixed_product_id,omitempty"`
	FixedProductName string `json:"fixed_product_name,omitempty"`
	Address          string `json:"address"`
}

// ScheduleUpdate описывает ответ сервера на создание подписки или изменение её расписания.
type ScheduleUpdate struct {
	ID           string           `json:"id,omitempty"`
	Status       string           `json:"status,omitempty"`
	NextDelivery *string          `json:"next_delivery,omitempty"`
	FinalAmount  *decimal.Decimal `json:"final_amount,omitempty"`
}

// CorporateOrder описывает корпоративный заказ.
type CorporateOrder struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"company_name"`
	ContactName        string          `json:"contact_name"`
	ContactEmail       string          `json:"contact_email"`
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPct        int             `json:"discount_pct"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	FinalAmount        decimal.Decimal `json:"final_amount"`
	BrandingLogoURL    string          `json:"branding_logo_url,omitempty"`
	BrandingMessage    string          `json:"branding_message,omitempty"`
	DeliveryAddress    string          `json:"delivery_address"`
	DeliveryDate       string          `json:"delivery_date,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringDay       string          `json:"recurring_day,omitempty"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	NextDelivery       string          `json:"next_delivery,omitempty"`
	Status             string          `json:"status"`
	CreatedAt          string          `json:"created_at"`
}

// CorporateOrderRequest описывает тело запроса на создание корпоративного заказа.
type CorporateOrderRequest struct {
	CompanyName        string          `json:"company_name"`
	ContactName        string          `json:"contact_name"`
	ContactEmail       string          `json:"contact_email"`
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	BrandingLogoURL    string          `json:"branding_logo_url,omitempty"`
	BrandingMessage    string          `json:"branding_message,omitempty"`
	DeliveryAddress    string          `json:"delivery_address"`
	DeliveryDate       string          `json:"delivery_date,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringDay       string          `json:"recurring_day,omitempty"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
}

// ContactRequest содержит сообщение из формы обратной связи.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ToastKind описывает тип всплывающего уведомления.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast описывает всплывающее уведомление для интерфейса.
type Toast struct {
	Message string    `json:"message"`
	Kind    ToastKind `json:"type"`
	ShownAt time.Time `json:"shown_at"`
}
