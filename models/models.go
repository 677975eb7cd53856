package models

import "time"

// Recognized profile roles. Role is an open string: unknown values are kept
// as-is, RoleDefault applies when a signup supplies none.
const (
	RoleFarmer   = "farmer"
	RoleConsumer = "consumer"
	RoleDefault  = RoleConsumer
)

// User is the auth-service account record. Referenced by Profile via UserID.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the marketplace-facing record, one per user, id = userid.
type Profile struct {
	ID        string    `json:"id" bson:"id"`
	FullName  string    `json:"fullName" bson:"fullName"`
	Role      string    `json:"role" bson:"role"`
	Location  string    `json:"location" bson:"location"` // informally "City, Region"
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Rating    float64   `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Produce is a single listing owned by a farmer profile.
type Produce struct {
	ProduceID   string    `json:"produceid" bson:"produceid"`
	FarmerID    string    `json:"farmerid" bson:"farmerid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"` // unit price
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Location    string    `json:"location" bson:"location"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`

	Farmer *Profile `json:"farmer,omitempty" bson:"farmer,omitempty"`
}

// CartItem is one cart row. One row per (consumer, produce) pair; adding an
// already-carted listing increments Quantity instead of duplicating.
type CartItem struct {
	CartID     string    `json:"cartid" bson:"cartid"`
	ConsumerID string    `json:"consumerid" bson:"consumerid"`
	ProduceID  string    `json:"produceid" bson:"produceid"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	AddedAt    time.Time `json:"addedAt" bson:"addedAt"`

	Produce *Produce `json:"produce,omitempty" bson:"produce,omitempty"`
}

// Order statuses. Initial is OrderPending; later transitions are
// administrative and never touch quantity or total.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCanceled   = "canceled"
)

// Order is one order line, created per cart row at checkout. TotalPrice is
// frozen at creation and does not track later price edits.
type Order struct {
	OrderID     string    `json:"orderId" bson:"orderId"`
	ConsumerID  string    `json:"consumerid" bson:"consumerid"`
	FarmerID    string    `json:"farmerid" bson:"farmerid"`
	ProduceID   string    `json:"produceid" bson:"produceid"`
	ProduceName string    `json:"produceName" bson:"produceName"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	TotalPrice  float64   `json:"totalPrice" bson:"totalPrice"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`

	Produce  *Produce `json:"produce,omitempty" bson:"produce,omitempty"`
	Consumer *Profile `json:"consumer,omitempty" bson:"consumer,omitempty"`
}

// Index represents a marketplace event published to Redis for the
// background worker.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
