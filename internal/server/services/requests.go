package services

import (
	"fmt"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// invalid wraps an ozzo validation error so callers can match ErrorValidation.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}

// imageRef accepts a base64 payload or an absolute http(s) URL.
var imageRef = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" || media.IsRemoteImage(s) {
		return nil
	}
	return is.Base64.Validate(s)
})

// LoginRequest is the body of a login call. LoginType defaults to
// common.LoginTypeSystem; googleLogin skips the password check and stores
// GoogleAuthAccessToken verbatim. Image is either base64 or the provider's
// avatar URL, which is kept as is.
type LoginRequest struct {
	UserName              string `json:"userName"`
	Password              string `json:"password"`
	Role                  string `json:"role"`
	LoginType             string `json:"loginType"`
	Image                 string `json:"image"`
	GoogleAuthAccessToken string `json:"googleAuthAccessToken"`
}

func (r LoginRequest) Validate() error {
	var passwordRules []validation.Rule
	if r.LoginType != common.LoginTypeGoogle {
		passwordRules = append(passwordRules, validation.Required)
	}
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.Role, validation.Required, validation.In(common.RoleCustomer, common.RoleMerchant, common.RoleAdmin)),
		validation.Field(&r.LoginType, validation.In(common.LoginTypeSystem, common.LoginTypeGoogle)),
		validation.Field(&r.Image, imageRef),
	))
}

// SignUpRequest is the body of a signup call.
type SignUpRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	Image    string `json:"image"`
}

func (r SignUpRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.Length(3, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.Role, validation.Required, validation.In(common.RoleCustomer, common.RoleMerchant)),
		validation.Field(&r.Contact, validation.Length(0, 100)),
		validation.Field(&r.Address, validation.Length(0, 300)),
		validation.Field(&r.Image, is.Base64),
	))
}

type UpdateUserRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Image    string `json:"image"`
}

func (r UpdateUserRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.UserName, validation.Required, validation.Length(3, 100)),
		validation.Field(&r.Image, is.Base64),
	))
}

type LinkStoreRequest struct {
	UserID  string `json:"userID"`
	StoreID string `json:"storeID"`
}

func (r LinkStoreRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.StoreID, validation.Required),
	))
}

type GoogleTokenRequest struct {
	UserName              string `json:"userName"`
	Role                  string `json:"role"`
	GoogleAuthAccessToken string `json:"googleAuthAccessToken"`
}

func (r GoogleTokenRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required),
		validation.Field(&r.Role, validation.Required),
	))
}

type CreateStoreRequest struct {
	StoreName  string `json:"storeName"`
	MerchantID string `json:"merchantID"`
	Location   string `json:"location"`
}

func (r CreateStoreRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.MerchantID, validation.Required),
		validation.Field(&r.Location, validation.Length(0, 300)),
	))
}

type UpdateStoreRequest struct {
	StoreID   string `json:"storeID"`
	StoreName string `json:"storeName"`
	Location  string `json:"location"`
}

func (r UpdateStoreRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.StoreName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Location, validation.Length(0, 300)),
	))
}

type UpdateDescriptionRequest struct {
	StoreID     string `json:"storeID"`
	Description string `json:"description"`
}

func (r UpdateDescriptionRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	))
}

// AddItemRequest appends Item to the store. An empty item id is replaced
// with a fresh one.
type AddItemRequest struct {
	StoreID string           `json:"storeID"`
	Item    models.StoreItem `json:"item"`
}

func (r AddItemRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.Item, validation.By(func(any) error {
			return validation.ValidateStruct(&r.Item,
				validation.Field(&r.Item.ItemName, validation.Required, validation.Length(1, 200)),
				validation.Field(&r.Item.Price, validation.Min(0.0)),
				validation.Field(&r.Item.Quantity, validation.Min(0)),
			)
		})),
	))
}

// ModifyItemRequest merges the set fields of Item into the item with the
// same id.
type ModifyItemRequest struct {
	StoreID string           `json:"storeID"`
	Item    models.ItemPatch `json:"item"`
}

func (r ModifyItemRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.Item, validation.By(func(any) error {
			return validation.ValidateStruct(&r.Item,
				validation.Field(&r.Item.ID, validation.Required),
				validation.Field(&r.Item.Price, validation.Min(0.0)),
				validation.Field(&r.Item.Quantity, validation.Min(0)),
			)
		})),
	))
}

type DeleteItemRequest struct {
	StoreID string `json:"storeID"`
	ItemID  string `json:"itemID"`
}

func (r DeleteItemRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.ItemID, validation.Required),
	))
}

// AddReviewRequest mirrors the flat review body: the review fields sit next
// to the store id.
type AddReviewRequest struct {
	StoreID  string `json:"storeID"`
	UserID   string `json:"userID"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}

func (r AddReviewRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Rating, validation.Min(0), validation.Max(5)),
		validation.Field(&r.Review, validation.Length(0, 5000)),
	))
}
