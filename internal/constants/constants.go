package constants

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Product category constants
const (
	CategoryLawnSuits        = "lawn_suits"
	CategoryChiffonSuits     = "chiffon_suits"
	CategoryCottonSuits      = "cotton_suits"
	CategoryEmbroideredSuits = "embroidered_suits"
	CategoryPrintedSuits     = "printed_suits"
	CategoryBridalCollection = "bridal_collection"
)

// Ordered category list for validation
var ProductCategories = []string{
	CategoryLawnSuits,
	CategoryChiffonSuits,
	CategoryCottonSuits,
	CategoryEmbroideredSuits,
	CategoryPrintedSuits,
	CategoryBridalCollection,
}

// Product collection constants
const (
	CollectionSummer      = "summer"
	CollectionWedding     = "wedding"
	CollectionFestive     = "festive"
	CollectionCasual      = "casual"
	CollectionPremium     = "premium"
	CollectionNewArrivals = "new_arrivals"
	CollectionBestsellers = "bestsellers"
)

// Ordered collection list for validation
var ProductCollections = []string{
	CollectionSummer,
	CollectionWedding,
	CollectionFestive,
	CollectionCasual,
	CollectionPremium,
	CollectionNewArrivals,
	CollectionBestsellers,
}

// User role constants
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// Order pricing policy constants
const (
	PricingPolicyFrozen = "frozen"
	PricingPolicyLive   = "live"
)

// Captcha provider constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Queue constants
const (
	QueueDefault           = "default"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// Cache defaults
const (
	RedisPrefixDefault = "libas"
)

// Session header carrying the guest session identifier
const (
	SessionHeader = "X-Session-ID"
)
