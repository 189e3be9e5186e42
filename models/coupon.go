package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountType is how a coupon's discount value is applied.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

// CouponDetails holds every coupon field except its identity and references, so the
// stored, populated and summary shapes share one definition.
type CouponDetails struct {
	CouponCode            string       `json:"couponCode" bson:"couponCode"`
	DiscountType          DiscountType `json:"discountType" bson:"discountType"`
	DiscountValue         float64      `json:"discountValue" bson:"discountValue"`
	AffiliateLink         string       `json:"affiliateLink" bson:"affiliateLink"`
	ExpiryDate            time.Time    `json:"expiryDate" bson:"expiryDate"`
	Status                bool         `json:"status" bson:"status"`
	Featured              bool         `json:"featured" bson:"featured"`
	ClickCount            int64        `json:"clickCount" bson:"clickCount"`
	UsedCount             int64        `json:"usedCount" bson:"usedCount"`
	Terms                 string       `json:"terms,omitempty" bson:"terms,omitempty"`
	MinimumPurchaseAmount *float64     `json:"minimumPurchaseAmount,omitempty" bson:"minimumPurchaseAmount,omitempty"`
	UsageLimit            *int64       `json:"usageLimit,omitempty" bson:"usageLimit,omitempty"`
	TargetAudience        string       `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`
	Description           string       `json:"description,omitempty" bson:"description,omitempty"`
	CouponType            string       `json:"couponType,omitempty" bson:"couponType,omitempty"`
	StartDate             *time.Time   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	MaxDiscountCap        *float64     `json:"maxDiscountCap,omitempty" bson:"maxDiscountCap,omitempty"`
	Tags                  []string     `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt             time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Coupon is the stored document; Store and Category are references.
type Coupon struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Store         primitive.ObjectID `json:"store" bson:"store"`
	Category      primitive.ObjectID `json:"category" bson:"category"`
	CouponDetails `bson:",inline"`
}

// PopulatedCoupon is a coupon with its store and category documents resolved.
// A reference to a deleted document resolves to null.
type PopulatedCoupon struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Store         *Store             `json:"store" bson:"store,omitempty"`
	Category      *Category          `json:"category" bson:"category,omitempty"`
	CouponDetails `bson:",inline"`
}

// CouponSummary is a coupon with its references reduced to {_id, name}.
type CouponSummary struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Store         *NamedRef          `json:"store" bson:"store,omitempty"`
	Category      *NamedRef          `json:"category" bson:"category,omitempty"`
	CouponDetails `bson:",inline"`
}

// CreateCouponRequest is the payload for POST /api/coupons.
type CreateCouponRequest struct {
	Store                 string       `json:"store" validate:"required,mongodb"`
	Category              string       `json:"category" validate:"required,mongodb"`
	CouponCode            string       `json:"couponCode" validate:"required"`
	DiscountType          DiscountType `json:"discountType" validate:"required,oneof=percentage flat"`
	DiscountValue         *float64     `json:"discountValue" validate:"required"`
	AffiliateLink         string       `json:"affiliateLink" validate:"required"`
	ExpiryDate            *time.Time   `json:"expiryDate" validate:"required"`
	Status                *bool        `json:"status"`
	Featured              *bool        `json:"featured"`
	Terms                 string       `json:"terms"`
	MinimumPurchaseAmount *float64     `json:"minimumPurchaseAmount"`
	UsageLimit            *int64       `json:"usageLimit"`
	TargetAudience        string       `json:"targetAudience"`
	Description           string       `json:"description"`
	CouponType            string       `json:"couponType"`
	StartDate             *time.Time   `json:"startDate"`
	MaxDiscountCap        *float64     `json:"maxDiscountCap"`
	Tags                  []string     `json:"tags"`
}

// UpdateCouponRequest is a partial update; nil fields are left untouched.
// Click and usage counters are not accepted here, they only move through their increment endpoints.
type UpdateCouponRequest struct {
	Store                 *string       `json:"store" validate:"omitempty,mongodb"`
	Category              *string       `json:"category" validate:"omitempty,mongodb"`
	CouponCode            *string       `json:"couponCode" validate:"omitempty,min=1"`
	DiscountType          *DiscountType `json:"discountType" validate:"omitempty,oneof=percentage flat"`
	DiscountValue         *float64      `json:"discountValue"`
	AffiliateLink         *string       `json:"affiliateLink" validate:"omitempty,min=1"`
	ExpiryDate            *time.Time    `json:"expiryDate"`
	Status                *bool         `json:"status"`
	Featured              *bool         `json:"featured"`
	Terms                 *string       `json:"terms"`
	MinimumPurchaseAmount *float64      `json:"minimumPurchaseAmount"`
	UsageLimit            *int64        `json:"usageLimit"`
	TargetAudience        *string       `json:"targetAudience"`
	Description           *string       `json:"description"`
	CouponType            *string       `json:"couponType"`
	StartDate             *time.Time    `json:"startDate"`
	MaxDiscountCap        *float64      `json:"maxDiscountCap"`
	Tags                  []string      `json:"tags"`
}
