package cart

import (
	"time"

	"github.com/google/uuid"
)

// Line is a snapshot of a product (or product variant) placed in a cart.
// UnitPrice is captured at the time the line is added.
type Line struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Name      string     `json:"name"`
	Size      string     `json:"size,omitempty"`
	Color     string     `json:"color,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	UnitPrice int64      `json:"unit_price"`
	Quantity  int        `json:"quantity"`
}

// Cart holds the lines for one guest cart token.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCart(token string) *Cart {
	return &Cart{Token: token, Lines: []Line{}}
}

// sameSelection reports whether two lines reference the same product/variant pair.
func sameSelection(a Line, productID uuid.UUID, variantID *uuid.UUID) bool {
	if a.ProductID != productID {
		return false
	}
	if a.VariantID == nil && variantID == nil {
		return true
	}
	if a.VariantID == nil || variantID == nil {
		return false
	}
	return *a.VariantID == *variantID
}

// Add merges the given line into the cart. An existing line for the same
// product/variant pair absorbs the quantity and keeps its original snapshot;
// otherwise a new line is appended with a fresh id.
func (c *Cart) Add(line Line) Line {
	for i := range c.Lines {
		if sameSelection(c.Lines[i], line.ProductID, line.VariantID) {
			c.Lines[i].Quantity += line.Quantity
			c.touch()
			return c.Lines[i]
		}
	}

	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	c.Lines = append(c.Lines, line)
	c.touch()
	return line
}

// SetQuantity updates a line quantity. A quantity of zero or less removes the
// line. Returns false when no line with the given id exists.
func (c *Cart) SetQuantity(lineID uuid.UUID, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ID != lineID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		c.touch()
		return true
	}
	return false
}

// Remove deletes a line by id. Removing an unknown id is a no-op.
func (c *Cart) Remove(lineID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.touch()
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
