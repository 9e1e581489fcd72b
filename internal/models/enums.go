package models

import (
	"fmt"
	"slices"
)

type Condition string

const (
	ConditionLikeNew    Condition = "Like New"
	ConditionVeryGood   Condition = "Very Good"
	ConditionGood       Condition = "Good"
	ConditionAcceptable Condition = "Acceptable"
)

type Format string

const (
	FormatHardcover Format = "Hardcover"
	FormatPaperback Format = "Paperback"
	FormatBoxedSet  Format = "Boxed Set"
)

type Category string

const (
	CategoryFiction    Category = "Fiction"
	CategoryNonFiction Category = "Non-Fiction"
	CategoryFantasy    Category = "Fantasy"
	CategorySciFi      Category = "Sci-Fi"
	CategoryRomance    Category = "Romance"
	CategoryMystery    Category = "Mystery"
	CategoryChildren   Category = "Children"
	CategoryHistory    Category = "History"
	CategoryBiography  Category = "Biography"
	CategorySelfHelp   Category = "Self-Help"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

var (
	conditions = []Condition{ConditionLikeNew, ConditionVeryGood, ConditionGood, ConditionAcceptable}
	formats    = []Format{FormatHardcover, FormatPaperback, FormatBoxedSet}
	categories = []Category{
		CategoryFiction, CategoryNonFiction, CategoryFantasy, CategorySciFi, CategoryRomance,
		CategoryMystery, CategoryChildren, CategoryHistory, CategoryBiography, CategorySelfHelp,
	}
	orderStatuses = []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	}
)

// ErrInvalidEnum is returned when a value is outside its fixed set.
type ErrInvalidEnum struct {
	Kind  string
	Value string
}

func (e *ErrInvalidEnum) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

func Conditions() []Condition      { return slices.Clone(conditions) }
func Formats() []Format            { return slices.Clone(formats) }
func Categories() []Category       { return slices.Clone(categories) }
func OrderStatuses() []OrderStatus { return slices.Clone(orderStatuses) }

func (c Condition) Valid() bool   { return slices.Contains(conditions, c) }
func (f Format) Valid() bool      { return slices.Contains(formats, f) }
func (c Category) Valid() bool    { return slices.Contains(categories, c) }
func (s OrderStatus) Valid() bool { return slices.Contains(orderStatuses, s) }

func ParseCondition(s string) (Condition, error) {
	if c := Condition(s); c.Valid() {
		return c, nil
	}
	return "", &ErrInvalidEnum{Kind: "condition", Value: s}
}

func ParseFormat(s string) (Format, error) {
	if f := Format(s); f.Valid() {
		return f, nil
	}
	return "", &ErrInvalidEnum{Kind: "format", Value: s}
}

func ParseCategory(s string) (Category, error) {
	if c := Category(s); c.Valid() {
		return c, nil
	}
	return "", &ErrInvalidEnum{Kind: "category", Value: s}
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	if st := OrderStatus(s); st.Valid() {
		return st, nil
	}
	return "", &ErrInvalidEnum{Kind: "order status", Value: s}
}

// UnmarshalText keeps request bodies from smuggling values outside the set.
func (c *Condition) UnmarshalText(b []byte) error {
	v, err := ParseCondition(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
