package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testProduct(id uint, name, price string) Product {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return Product{ID: id, Code: name, Name: name, Price: p, Active: true}
}

func TestCartAddLineMergesExisting(t *testing.T) {
	cart := NewCart()
	paracetamol := testProduct(1, "Paracetamol 500mg", "12.50")

	cart.AddLine(paracetamol, 1)
	cart.AddLine(paracetamol, 2)

	if cart.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1", cart.LineCount())
	}
	line, ok := cart.Line(1)
	if !ok {
		t.Fatal("line for product 1 missing")
	}
	if line.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", line.Quantity)
	}
	if !line.Subtotal.Equal(decimal.RequireFromString("37.50")) {
		t.Errorf("Subtotal = %s, want 37.50", line.Subtotal)
	}
}

func TestCartAddLineIgnoresNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Ibuprofeno 400mg", "8.00"), 0)
	cart.AddLine(testProduct(1, "Ibuprofeno 400mg", "8.00"), -2)

	if !cart.IsEmpty() {
		t.Errorf("cart should be empty, has %d lines", cart.LineCount())
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Amoxicilina 500mg", "25.00"), 2)

	cart.UpdateQuantity(1, 5)
	line, _ := cart.Line(1)
	if line.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", line.Quantity)
	}
	if !line.Subtotal.Equal(decimal.RequireFromString("125.00")) {
		t.Errorf("Subtotal = %s, want 125.00", line.Subtotal)
	}

	// Unknown product is a no-op
	cart.UpdateQuantity(99, 3)
	if cart.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", cart.LineCount())
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Loratadina 10mg", "6.50"), 1)
	cart.AddLine(testProduct(2, "Omeprazol 20mg", "14.00"), 1)

	cart.UpdateQuantity(1, 0)

	if cart.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1", cart.LineCount())
	}
	if _, ok := cart.Line(1); ok {
		t.Error("line for product 1 should have been removed")
	}
	if _, ok := cart.Line(2); !ok {
		t.Error("line for product 2 should remain")
	}
}

func TestCartRemoveLine(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Aspirina 100mg", "4.20"), 2)

	cart.RemoveLine(1)
	if !cart.IsEmpty() {
		t.Error("cart should be empty after removing its only line")
	}

	// Removing again is a no-op
	cart.RemoveLine(1)
}

func TestCartTotalsAndCounts(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Paracetamol 500mg", "12.50"), 2) // 25.00
	cart.AddLine(testProduct(2, "Jarabe 120ml", "18.90"), 1)      // 18.90

	if !cart.Total().Equal(decimal.RequireFromString("43.90")) {
		t.Errorf("Total = %s, want 43.90", cart.Total())
	}
	if cart.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", cart.LineCount())
	}
	if cart.ItemCount() != 3 {
		t.Errorf("ItemCount = %d, want 3", cart.ItemCount())
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Vitamina C", "9.90"), 3)

	cart.Clear()

	if !cart.IsEmpty() {
		t.Error("cart should be empty after Clear")
	}
	if !cart.Total().Equal(decimal.Zero) {
		t.Errorf("Total = %s, want 0", cart.Total())
	}

	// Cart is reusable after clearing
	cart.AddLine(testProduct(1, "Vitamina C", "9.90"), 1)
	if cart.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", cart.LineCount())
	}
}

func TestCartLinesPreserveInsertionOrder(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(3, "C", "1.00"), 1)
	cart.AddLine(testProduct(1, "A", "1.00"), 1)
	cart.AddLine(testProduct(2, "B", "1.00"), 1)
	cart.AddLine(testProduct(3, "C", "1.00"), 1) // merge keeps position

	lines := cart.Lines()
	want := []uint{3, 1, 2}
	for i, id := range want {
		if lines[i].Product.ID != id {
			t.Errorf("lines[%d].Product.ID = %d, want %d", i, lines[i].Product.ID, id)
		}
	}
}

func TestCartRepriceOnReAdd(t *testing.T) {
	cart := NewCart()
	cart.AddLine(testProduct(1, "Gasa esteril", "5.00"), 1)

	// Catalog price changed before the second add; the whole line takes
	// the current price.
	cart.AddLine(testProduct(1, "Gasa esteril", "6.00"), 1)

	line, _ := cart.Line(1)
	if !line.Subtotal.Equal(decimal.RequireFromString("12.00")) {
		t.Errorf("Subtotal = %s, want 12.00", line.Subtotal)
	}
	if !line.Product.Price.Equal(decimal.RequireFromString("6.00")) {
		t.Errorf("Price = %s, want 6.00", line.Product.Price)
	}
}
