package models

// DescriptionMaxLength is the width of the description column.
const DescriptionMaxLength = 500

// ProductNameMaxLength is the width of the product_name column.
const ProductNameMaxLength = 255

// Product represents a product in the catalog.
// A zero ID marks a product that has not been persisted yet.
type Product struct {
	ID          uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductName string  `json:"productName" gorm:"column:product_name;type:varchar(255);not null" validate:"required,max=255"`
	Price       float64 `json:"price" gorm:"column:price;type:double precision;not null"`
	Quantity    int32   `json:"quantity" gorm:"column:quantity;not null"`
	Description *string `json:"description" gorm:"column:description;type:varchar(500)" validate:"omitempty,max=500"`
}

// TableName pins the table name used by gorm.
func (Product) TableName() string {
	return "products"
}

// NewProduct builds a product that has not been persisted yet.
func NewProduct(productName string, price float64, quantity int32, description *string) *Product {
	return &Product{
		ProductName: productName,
		Price:       price,
		Quantity:    quantity,
		Description: description,
	}
}

// Persisted reports whether the product has been assigned an id by storage.
func (p Product) Persisted() bool {
	return p.ID != 0
}

// Equal compares by id when both products are persisted and structurally otherwise.
func (p Product) Equal(other Product) bool {
	if p.Persisted() && other.Persisted() {
		return p.ID == other.ID
	}
	return p.ID == other.ID &&
		p.ProductName == other.ProductName &&
		p.Price == other.Price &&
		p.Quantity == other.Quantity &&
		equalDescription(p.Description, other.Description)
}

// Validate checks the column-level constraints of the products table.
func (p Product) Validate() error {
	return validateStruct(p)
}

// Apply overwrites every mutable field with the values of in. The id is left untouched.
func (p *Product) Apply(in ProductInput) {
	p.ProductName = in.ProductName
	p.Price = derefFloat(in.Price)
	p.Quantity = derefInt32(in.Quantity)
	p.Description = in.Description
}

// ProductInput carries caller-supplied product fields for create and update.
// Pointer fields distinguish an absent value from a zero value.
type ProductInput struct {
	ProductName string   `json:"productName" validate:"required,max=255"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int32   `json:"quantity" validate:"required"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
}

// Validate checks that the input satisfies the column constraints.
func (in ProductInput) Validate() error {
	return validateStruct(in)
}

// ToProduct builds an unpersisted product from the input.
func (in ProductInput) ToProduct() *Product {
	return NewProduct(in.ProductName, derefFloat(in.Price), derefInt32(in.Quantity), in.Description)
}

func equalDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
