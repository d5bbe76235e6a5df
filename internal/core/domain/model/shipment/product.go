package shipment

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

const (
	ProductNameMaxLength = 50
	ProductMinQuantity   = 1
	ProductMaxQuantity   = 10
)

// ErrProductIsNotConstructed is returned when validating a zero-value Product.
var ErrProductIsNotConstructed = errs.NewValueIsRequiredError("product must be created via NewProduct")

// Category classifies an ordered product.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryBeauty      Category = "Beauty"
	CategoryHealth      Category = "Health"
	CategoryToys        Category = "Toys"
	CategorySports      Category = "Sports"
	CategoryHome        Category = "Home"
	CategoryFood        Category = "Food"
	CategoryAccessories Category = "Accessories"
	CategoryOther       Category = "Other"
)

func Categories() []Category {
	return []Category{
		CategoryElectronics, CategoryClothing, CategoryBooks, CategoryBeauty, CategoryHealth, CategoryToys,
		CategorySports, CategoryHome, CategoryFood, CategoryAccessories, CategoryOther,
	}
}

func (c Category) Validate() error {
	for _, known := range Categories() {
		if c == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a known category", string(c)))
}

// Product is one line of a shipment: what to buy, where, and how heavy it is.
// Weight is expressed in kilograms, price in USD.
type Product struct {
	name     string
	quantity int
	category Category
	link     string
	price    float64
	weight   float64
	photo    string
	guard    guard.ConstructorGuard
}

// ProductParams groups the attributes of a product as received from the shopper.
type ProductParams struct {
	Name     string
	Quantity int
	Category Category
	Link     string
	Price    float64
	Weight   float64
	Photo    string
}

func NewProduct(p ProductParams) (Product, error) {
	product := Product{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		product.setName(p.Name),
		product.setQuantity(p.Quantity),
		product.setCategory(p.Category),
		product.setLink(p.Link),
		product.setPrice(p.Price),
		product.setWeight(p.Weight),
		product.setPhoto(p.Photo),
	); err != nil {
		return Product{}, err
	}

	return product, nil
}

func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p Product) Name() string       { return p.name }
func (p Product) Quantity() int      { return p.quantity }
func (p Product) Category() Category { return p.category }
func (p Product) Link() string       { return p.link }
func (p Product) Price() float64     { return p.price }
func (p Product) Weight() float64    { return p.weight }
func (p Product) Photo() string      { return p.photo }

// Params returns the product attributes, e.g. to rebuild it with a new photo.
func (p Product) Params() ProductParams {
	return ProductParams{
		Name:     p.name,
		Quantity: p.quantity,
		Category: p.category,
		Link:     p.link,
		Price:    p.price,
		Weight:   p.weight,
		Photo:    p.photo,
	}
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	if n := utf8.RuneCountInString(name); n > ProductNameMaxLength {
		return errs.NewValueIsOutOfRangeError("product name length", n, 1, ProductNameMaxLength)
	}
	p.name = name
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < ProductMinQuantity || quantity > ProductMaxQuantity {
		return errs.NewValueIsOutOfRangeError("product quantity", quantity, ProductMinQuantity, ProductMaxQuantity)
	}
	p.quantity = quantity
	return nil
}

func (p *Product) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	p.category = category
	return nil
}

func (p *Product) setLink(link string) error {
	if err := validateURL("product link", link); err != nil {
		return err
	}
	p.link = link
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("product price", fmt.Errorf("%v is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	p.weight = weight
	return nil
}

func (p *Product) setPhoto(photo string) error {
	if err := validateURL("product photo", photo); err != nil {
		return err
	}
	p.photo = photo
	return nil
}

func validateURL(param, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not an http(s) URL", raw))
	}
	return nil
}
