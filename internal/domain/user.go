package domain

// Credential is the sign-in record kept next to the users collection.
type Credential struct {
	UID   string `db:"uid"`
	Email string `db:"email"`
	Hash  string `db:"password_hash"`
}

// SellerProfile is the seller subset of a users/{uid} document.
type SellerProfile struct {
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Location          string       `json:"location"`
	ShopName          string       `json:"shopName"`
	ShopDescription   string       `json:"shopDescription"`
	SellCategories    []Category   `json:"-"`
	PayoutMethod      PayoutMethod `json:"payoutMethod"`
	PayoutMobilePhone string       `json:"payoutMobilePhone"`
	PayoutPayPalEmail string       `json:"payoutPayPalEmail"`
}

type PayoutMethod string

const (
	PayoutMobileMoney PayoutMethod = "mobile_money"
	PayoutPayPal      PayoutMethod = "paypal"
)

// Document keys of the users collection.
const (
	UsersCollection = "users"

	KeyFirstName         = "firstName"
	KeyLastName          = "lastName"
	KeyEmail             = "email"
	KeyPhone             = "phone"
	KeyShopName          = "shopName"
	KeyShopDescription   = "shopDescription"
	KeySellCategories    = "sellCategories"
	KeyPayoutMethod      = "payoutMethod"
	KeyPayoutMobilePhone = "payoutMobilePhone"
	KeyPayoutPayPalEmail = "payoutPayPalEmail"
	KeySellTermsAccepted = "sellTermsAccepted"
)
